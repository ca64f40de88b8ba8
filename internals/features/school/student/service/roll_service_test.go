package service_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"studentrecords_backend/internals/features/school/student/service"
	"studentrecords_backend/internals/testutils"
)

func TestNextRollCountsPerYearClassPartition(t *testing.T) {
	db := testutils.OpenTestDB(t)

	roll, err := service.NextRoll(db, 2024, "5")
	require.NoError(t, err)
	assert.Equal(t, "202451", roll)

	roll, err = service.NextRoll(db, 2024, "5")
	require.NoError(t, err)
	assert.Equal(t, "202452", roll)

	// other partitions keep their own counters
	roll, err = service.NextRoll(db, 2024, "6")
	require.NoError(t, err)
	assert.Equal(t, "202461", roll)

	roll, err = service.NextRoll(db, 2025, "5")
	require.NoError(t, err)
	assert.Equal(t, "202551", roll)

	roll, err = service.NextRoll(db, 2024, "5")
	require.NoError(t, err)
	assert.Equal(t, "202453", roll)
}

func TestNextRollConcurrentAssignmentsStayUnique(t *testing.T) {
	db := testutils.OpenTestDB(t)

	const n = 8
	rolls := make(chan string, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := db.Transaction(func(tx *gorm.DB) error {
				roll, err := service.NextRoll(tx, 2024, "7")
				if err != nil {
					return err
				}
				rolls <- roll
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	close(rolls)

	seen := make(map[string]bool, n)
	for roll := range rolls {
		assert.False(t, seen[roll], "roll %s assigned twice", roll)
		seen[roll] = true
	}
	assert.Len(t, seen, n)
}
