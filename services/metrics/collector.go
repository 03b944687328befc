// Package metricsvc exposes classroom progress as prometheus metrics.
package metricsvc

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/einsteinium08/class-bloom-space/core/classroom"
)

const namespace = "classroom"

// Collector computes every value from the store on each scrape; nothing is cached.
type Collector struct {
	svc *classroom.Service
	now func() time.Time

	assignments     *prometheus.Desc
	byStatus        *prometheus.Desc
	completed       *prometheus.Desc
	completionRate  *prometheus.Desc
	overdue         *prometheus.Desc
	dueSoon         *prometheus.Desc
	announcements   *prometheus.Desc
	pinned          *prometheus.Desc
	announcedRecent *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

func NewCollector(svc *classroom.Service) *Collector {
	desc := func(name, help string, labels ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, labels, nil)
	}
	return &Collector{
		svc:             svc,
		now:             func() time.Time { return classroom.NowFunc().UTC() },
		assignments:     desc("assignments", "Number of assignments."),
		byStatus:        desc("assignments_by_status", "Number of assignments per status.", "status"),
		completed:       desc("assignments_completed", "Number of submitted or graded assignments."),
		completionRate:  desc("completion_rate_percent", "Completed assignments as a rounded percentage."),
		overdue:         desc("assignments_overdue", "Pending assignments past their due date."),
		dueSoon:         desc("assignments_due_soon", "Pending assignments due within two days."),
		announcements:   desc("announcements", "Number of announcements."),
		pinned:          desc("announcements_pinned", "Number of pinned announcements."),
		announcedRecent: desc("announcements_this_week", "Announcements created within the last seven days."),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.assignments
	ch <- c.byStatus
	ch <- c.completed
	ch <- c.completionRate
	ch <- c.overdue
	ch <- c.dueSoon
	ch <- c.announcements
	ch <- c.pinned
	ch <- c.announcedRecent
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ctx := context.Background()
	gauge := func(d *prometheus.Desc, v int, labels ...string) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, float64(v), labels...)
	}

	assignments, err := c.svc.Assignments(ctx)
	if err != nil {
		ch <- prometheus.NewInvalidMetric(c.assignments, err)
	} else {
		p := classroom.ComputeProgress(assignments)
		gauge(c.assignments, p.Total)
		gauge(c.byStatus, p.Pending, string(classroom.StatusPending))
		gauge(c.byStatus, p.Submitted, string(classroom.StatusSubmitted))
		gauge(c.byStatus, p.Graded, string(classroom.StatusGraded))
		gauge(c.completed, p.Completed)
		gauge(c.completionRate, p.CompletionRate)

		var overdue, dueSoon int
		now := c.now()
		for _, a := range assignments {
			due := classroom.DueState(a, now)
			if due.Overdue {
				overdue++
			}
			if due.DueSoon {
				dueSoon++
			}
		}
		gauge(c.overdue, overdue)
		gauge(c.dueSoon, dueSoon)
	}

	stats, err := c.svc.AnnouncementStats(ctx)
	if err != nil {
		ch <- prometheus.NewInvalidMetric(c.announcements, err)
		return
	}
	gauge(c.announcements, stats.Total)
	gauge(c.pinned, stats.Pinned)
	gauge(c.announcedRecent, stats.ThisWeek)
}

// NewRegistry returns a registry holding only the classroom collector.
func NewRegistry(c *Collector) (*prometheus.Registry, error) {
	reg := prometheus.NewPedanticRegistry()
	if err := reg.Register(c); err != nil {
		return nil, errors.Wrap(err, "registering classroom collector")
	}
	return reg, nil
}

// WriteText gathers g and writes it in the prometheus text exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return errors.Wrap(err, "gathering metrics")
	}
	for _, mf := range families {
		if _, err = expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.Wrap(err, "writing metrics")
		}
	}
	return nil
}
