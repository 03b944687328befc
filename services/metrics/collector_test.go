package metricsvc

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/einsteinium08/class-bloom-space/core/classroom"
	logsvc "github.com/einsteinium08/class-bloom-space/services/logger"
	inmemdb "github.com/einsteinium08/class-bloom-space/storage/database/inmem"
	"github.com/einsteinium08/class-bloom-space/testutil"
)

func setup(t *testing.T) *classroom.Service {
	testutil.FreezeTime(t, testutil.Now)

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	svc := classroom.NewService(inmemdb.NewAssignmentRepository(db), inmemdb.NewAnnouncementRepository(db), logsvc.NewNopLogger())
	if err = svc.Seed(context.Background()); err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}
	return svc
}

const seededMetrics = `
# HELP classroom_assignments Number of assignments.
# TYPE classroom_assignments gauge
classroom_assignments 2
# HELP classroom_assignments_by_status Number of assignments per status.
# TYPE classroom_assignments_by_status gauge
classroom_assignments_by_status{status="graded"} 0
classroom_assignments_by_status{status="pending"} 2
classroom_assignments_by_status{status="submitted"} 0
# HELP classroom_completion_rate_percent Completed assignments as a rounded percentage.
# TYPE classroom_completion_rate_percent gauge
classroom_completion_rate_percent 0
# HELP classroom_announcements_pinned Number of pinned announcements.
# TYPE classroom_announcements_pinned gauge
classroom_announcements_pinned 1
# HELP classroom_announcements_this_week Announcements created within the last seven days.
# TYPE classroom_announcements_this_week gauge
classroom_announcements_this_week 2
`

func TestCollector_seeded(t *testing.T) {
	svc := setup(t)

	err := promtestutil.CollectAndCompare(NewCollector(svc), strings.NewReader(seededMetrics),
		"classroom_assignments",
		"classroom_assignments_by_status",
		"classroom_completion_rate_percent",
		"classroom_announcements_pinned",
		"classroom_announcements_this_week",
	)
	assert.NoError(t, err)
	assert.Equal(t, 11, promtestutil.CollectAndCount(NewCollector(svc)))
}

func TestCollector_recomputesOnEveryScrape(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	c := NewCollector(svc)

	_, err := svc.SubmitAssignment(ctx, "1")
	require.NoError(t, err)
	_, err = svc.AddAssignment(ctx, classroom.NewAssignment{Title: "Late", DueDate: testutil.Now.Add(-24 * time.Hour)})
	require.NoError(t, err)
	_, err = svc.AddAssignment(ctx, classroom.NewAssignment{Title: "Soon", DueDate: testutil.Now.Add(12 * time.Hour)})
	require.NoError(t, err)

	want := `
# HELP classroom_assignments_completed Number of submitted or graded assignments.
# TYPE classroom_assignments_completed gauge
classroom_assignments_completed 1
# HELP classroom_completion_rate_percent Completed assignments as a rounded percentage.
# TYPE classroom_completion_rate_percent gauge
classroom_completion_rate_percent 25
# HELP classroom_assignments_overdue Pending assignments past their due date.
# TYPE classroom_assignments_overdue gauge
classroom_assignments_overdue 1
# HELP classroom_assignments_due_soon Pending assignments due within two days.
# TYPE classroom_assignments_due_soon gauge
classroom_assignments_due_soon 1
`
	err = promtestutil.CollectAndCompare(c, strings.NewReader(want),
		"classroom_assignments_completed",
		"classroom_completion_rate_percent",
		"classroom_assignments_overdue",
		"classroom_assignments_due_soon",
	)
	assert.NoError(t, err)
}

func TestWriteText(t *testing.T) {
	reg, err := NewRegistry(NewCollector(setup(t)))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, reg))
	out := buf.String()
	assert.Contains(t, out, "# TYPE classroom_assignments gauge\n")
	assert.Contains(t, out, "classroom_assignments 2\n")
	assert.Contains(t, out, `classroom_assignments_by_status{status="pending"} 2`)
	assert.Contains(t, out, "classroom_announcements 2\n")
}
