package background

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSweeperRun(t *testing.T) {
	calls := 0
	s := NewSweeper(func() (int64, error) {
		calls++
		return 4, nil
	})

	s.run()
	s.run()
	assert.Equal(t, 2, calls)
}

func TestSweeperRunSurvivesError(t *testing.T) {
	s := NewSweeper(func() (int64, error) {
		return 0, fmt.Errorf("storage down")
	})

	// a failed sweep only logs; the sweeper stays usable
	s.run()
	s.run()
}

func TestSweeperStartRejectsBadSchedule(t *testing.T) {
	s := NewSweeper(func() (int64, error) { return 0, nil })

	assert.Error(t, s.Start("not-a-schedule"))
}

func TestSweeperStartStop(t *testing.T) {
	s := NewSweeper(func() (int64, error) { return 0, nil })

	assert.NoError(t, s.Start("@hourly"))
	s.Stop()
}
