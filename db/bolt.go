package db

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"absensi_qr/models"

	"go.etcd.io/bbolt"
)

const (
	boltBucketAttendance = "absensi"       // key: sequence -> AttendanceRecord JSON
	boltBucketDayIndex   = "absensi_idx"   // key: npm \x00 tanggal -> sequence
	boltBucketSummary    = "rekap_bulanan" // key: sequence -> MonthlySummaryRow JSON
)

// Bolt is a single-file embedded store for a standalone kiosk. bbolt allows
// one writer at a time, so AppendIfAbsent is atomic.
type Bolt struct {
	db *bbolt.DB
}

func NewBolt(path string) (*Bolt, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("error opening bolt database: %w", err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{boltBucketAttendance, boltBucketDayIndex, boltBucketSummary} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("error creating bolt buckets: %w", err)
	}

	return &Bolt{db: db}, nil
}

func (b *Bolt) Ping(ctx context.Context) error {
	return b.db.View(func(tx *bbolt.Tx) error {
		return nil
	})
}

func (b *Bolt) Close() error {
	return b.db.Close()
}

func dayKey(id, date string) []byte {
	return []byte(id + "\x00" + date)
}

func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

func (b *Bolt) ListAttendance(ctx context.Context) ([]models.AttendanceRecord, error) {
	records := []models.AttendanceRecord{}

	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketAttendance)).ForEach(func(_, v []byte) error {
			var rec models.AttendanceRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("error reading attendance: %w", err)
	}

	return records, nil
}

func (b *Bolt) AttendanceExists(ctx context.Context, id, date string) (bool, error) {
	var exists bool

	err := b.db.View(func(tx *bbolt.Tx) error {
		exists = tx.Bucket([]byte(boltBucketDayIndex)).Get(dayKey(id, date)) != nil
		return nil
	})

	return exists, err
}

func (b *Bolt) AppendIfAbsent(ctx context.Context, rec models.AttendanceRecord) (bool, error) {
	data, err := json.Marshal(&rec)
	if err != nil {
		return false, err
	}

	var inserted bool

	err = b.db.Update(func(tx *bbolt.Tx) error {
		idx := tx.Bucket([]byte(boltBucketDayIndex))
		if idx.Get(dayKey(rec.ID, rec.Date)) != nil {
			return nil
		}

		bucket := tx.Bucket([]byte(boltBucketAttendance))
		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		if err := bucket.Put(seqKey(seq), data); err != nil {
			return err
		}
		if err := idx.Put(dayKey(rec.ID, rec.Date), seqKey(seq)); err != nil {
			return err
		}

		inserted = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("error appending attendance: %w", err)
	}

	return inserted, nil
}

func (b *Bolt) ListSummary(ctx context.Context) ([]models.MonthlySummaryRow, error) {
	summary := []models.MonthlySummaryRow{}

	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketSummary)).ForEach(func(_, v []byte) error {
			var row models.MonthlySummaryRow
			if err := json.Unmarshal(v, &row); err != nil {
				return err
			}
			summary = append(summary, row)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("error reading summary: %w", err)
	}

	return summary, nil
}

func (b *Bolt) ReplaceSummary(ctx context.Context, rows []models.MonthlySummaryRow) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(boltBucketSummary)); err != nil {
			return err
		}
		bucket, err := tx.CreateBucket([]byte(boltBucketSummary))
		if err != nil {
			return err
		}

		for i, row := range rows {
			data, err := json.Marshal(&row)
			if err != nil {
				return err
			}
			if err := bucket.Put(seqKey(uint64(i+1)), data); err != nil {
				return err
			}
		}

		return nil
	})
}
