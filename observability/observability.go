/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package observability adapts slot events to zap logs and prometheus metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/suparena/slotstore"
)

// ZapObserver logs slot events. Absences and removals are routine and go to debug;
// shape mismatches and codec failures usually mean two slots disagree about a key and go
// to warn.
type ZapObserver struct {
	logger *zap.Logger
}

// NewZapObserver returns an observer logging to logger, or a no-op logger when nil.
func NewZapObserver(logger *zap.Logger) *ZapObserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapObserver{logger: logger}
}

func (o *ZapObserver) OnEvent(e slotstore.Event) {
	level := zapcore.WarnLevel
	switch e.Type {
	case slotstore.EventAbsent, slotstore.EventRemoved:
		level = zapcore.DebugLevel
	}

	msg := "Slot fallback"
	if e.Type == slotstore.EventRemoved {
		msg = "Slot record removed"
	}
	ce := o.logger.Check(level, msg)
	if ce == nil {
		return
	}

	fields := []zap.Field{
		zap.String("event", string(e.Type)),
		zap.String("key", e.Key),
		zap.Stringer("strategy", e.Strategy),
		zap.Time("at", e.Timestamp),
	}
	if e.Err != nil {
		fields = append(fields, zap.Error(e.Err))
	}
	ce.Write(fields...)
}

// MetricsObserver counts slot events by type. It is a prometheus.Collector.
type MetricsObserver struct {
	events *prometheus.CounterVec
}

var _ prometheus.Collector = (*MetricsObserver)(nil)

// NewMetricsObserver creates the slotstore_events_total counter vector.
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "slotstore",
			Name:      "events_total",
			Help:      "Number of slot fallbacks and removals by event type",
		}, []string{"event"}),
	}
}

func (o *MetricsObserver) OnEvent(e slotstore.Event) {
	o.events.WithLabelValues(string(e.Type)).Inc()
}

// Describe returns all descriptions of the collector.
func (o *MetricsObserver) Describe(ch chan<- *prometheus.Desc) {
	o.events.Describe(ch)
}

// Collect returns the current state of all metrics of the collector.
func (o *MetricsObserver) Collect(ch chan<- prometheus.Metric) {
	o.events.Collect(ch)
}

// MultiObserver forwards every event to each of its observers in order.
type MultiObserver []slotstore.Observer

func (m MultiObserver) OnEvent(e slotstore.Event) {
	for _, o := range m {
		if o != nil {
			o.OnEvent(e)
		}
	}
}
