// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertToPgx5DSN(t *testing.T) {
	tests := map[string]string{
		"postgres://hms:hms@db:5432/hms": "pgx5://hms:hms@db:5432/hms",
		"postgresql://hms@db/hms?x=1":    "pgx5://hms@db/hms?x=1",
		"pgx5://already":                 "pgx5://already",
		"host=db user=hms dbname=hms":    "host=db user=hms dbname=hms",
	}
	for in, want := range tests {
		assert.Equal(t, want, convertToPgx5DSN(in), in)
	}
}
