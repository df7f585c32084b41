/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bolt

import (
	"github.com/prometheus/client_golang/prometheus"
	bolt "go.etcd.io/bbolt"
)

var (
	recordsDesc = prometheus.NewDesc(
		"slotstore_bolt_records",
		"Number of records in the slot bucket",
		nil, nil)

	boltWritesDesc = prometheus.NewDesc(
		"slotstore_bolt_writes_total",
		"Total number of boltdb writes",
		nil, nil)

	boltReadsDesc = prometheus.NewDesc(
		"slotstore_bolt_reads_total",
		"Total number of boltdb reads",
		nil, nil)
)

// Describe returns all descriptions of the collector.
func (s *Store) Describe(ch chan<- *prometheus.Desc) {
	ch <- recordsDesc
	ch <- boltWritesDesc
	ch <- boltReadsDesc
}

// Collect returns the current state of all metrics of the collector.
func (s *Store) Collect(ch chan<- prometheus.Metric) {
	stats := s.db.Stats()

	ch <- prometheus.MustNewConstMetric(
		boltReadsDesc,
		prometheus.CounterValue,
		float64(stats.TxN),
	)

	ch <- prometheus.MustNewConstMetric(
		boltWritesDesc,
		prometheus.CounterValue,
		float64(stats.TxStats.Write),
	)

	records := 0
	_ = s.db.View(func(tx *bolt.Tx) error {
		records = tx.Bucket([]byte(s.config.Bucket)).Stats().KeyN
		return nil
	})

	ch <- prometheus.MustNewConstMetric(
		recordsDesc,
		prometheus.GaugeValue,
		float64(records),
	)
}
