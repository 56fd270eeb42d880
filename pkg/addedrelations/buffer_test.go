package addedrelations

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-relbuf/pkg/logging"
	"github.com/dd0wney/cluso-relbuf/pkg/metrics"
	"github.com/dd0wney/cluso-relbuf/pkg/relation"
)

func TestBuffer_RemoveDropsAllOccurrences(t *testing.T) {
	a := relation.NewEdge(1, "knows", 1, 2)
	b := relation.NewEdge(2, "knows", 2, 3)

	buf := NewDefault[*relation.Relation]()
	assert.True(t, buf.Add(a))
	assert.True(t, buf.Add(b))
	assert.True(t, buf.Add(a))
	assert.True(t, buf.Remove(a))

	assert.Equal(t, []*relation.Relation{b}, buf.All())
}

func TestBuffer_ViewPreservesOrder(t *testing.T) {
	a := relation.NewEdge(1, "knows", 1, 2)
	b := relation.NewEdge(2, "likes", 2, 3)

	buf := NewDefault[*relation.Relation]()
	buf.Add(a)
	buf.Add(b)

	got := buf.View(func(r *relation.Relation) bool { return r == b })
	assert.Equal(t, []*relation.Relation{b}, got)

	got = buf.View(relation.IncidentOn(2))
	assert.Equal(t, []*relation.Relation{a, b}, got)
}

func TestBuffer_RemoveWithoutAdd(t *testing.T) {
	buf := NewDefault[string]()
	assert.True(t, buf.Remove("a"))

	assert.True(t, buf.IsEmpty())
	assert.Empty(t, buf.All())
	assert.Equal(t, 0, buf.Pending())
}

func TestBuffer_RemoveNeverAddedIsNoop(t *testing.T) {
	buf := NewDefault[string]()
	buf.Add("a")
	buf.Add("b")
	buf.Remove("z")

	assert.Equal(t, []string{"a", "b"}, buf.All())
	assert.False(t, buf.IsEmpty())
}

func TestBuffer_IsEmptyWhenEverythingRemoved(t *testing.T) {
	buf := NewDefault[int]()
	for i := 0; i < 5; i++ {
		buf.Add(i)
	}
	for i := 0; i < 5; i++ {
		buf.Remove(i)
	}

	assert.Equal(t, 5, buf.Len(), "removals are not applied until a read")
	assert.True(t, buf.IsEmpty())
	assert.Equal(t, 0, buf.Len())
}

func TestBuffer_ThresholdCompaction(t *testing.T) {
	rels := make([]*relation.Relation, 60)
	buf := NewDefault[*relation.Relation]()
	for i := range rels {
		rels[i] = relation.NewEdge(uint64(i+1), "link", uint64(i), uint64(i+1))
		buf.Add(rels[i])
	}

	for i := 0; i < DefaultMaxDeletedSize; i++ {
		buf.Remove(rels[i])
	}
	require.Equal(t, DefaultMaxDeletedSize, buf.Pending(), "50 pending removals stay below the threshold")
	require.Equal(t, 0, buf.Stats().Compactions)

	buf.Remove(rels[DefaultMaxDeletedSize])

	assert.Equal(t, 0, buf.Pending())
	assert.Equal(t, 1, buf.Stats().Compactions)
	assert.Equal(t, 9, buf.Len())
	assert.Equal(t, rels[51:], buf.All())
	assert.Equal(t, 1, buf.Stats().Compactions, "read after threshold compaction has nothing to apply")
}

func TestBuffer_DuplicateRemovalsCountOnce(t *testing.T) {
	buf := New[string](Config{MaxDeletedSize: 2})
	buf.Add("a")
	for i := 0; i < 10; i++ {
		assert.True(t, buf.Remove("a"))
	}

	assert.Equal(t, 1, buf.Pending())
	assert.Equal(t, 0, buf.Stats().Compactions)
	assert.Equal(t, 10, buf.Stats().Removed)
	assert.True(t, buf.IsEmpty())
}

func TestBuffer_CapacityHintMayUndershoot(t *testing.T) {
	// more removals than additions drives the capacity hint below zero
	buf := New[int](Config{MaxDeletedSize: 100})
	buf.Add(1)
	buf.Add(2)
	for i := 2; i < 40; i++ {
		buf.Remove(i)
	}

	assert.Equal(t, []int{1}, buf.All())
}

func TestBuffer_ViewIsSnapshot(t *testing.T) {
	buf := NewDefault[string]()
	buf.Add("a")
	buf.Add("b")

	view := buf.View(func(string) bool { return true })
	buf.Add("c")
	buf.Remove("a")
	_ = buf.All()

	assert.Equal(t, []string{"a", "b"}, view)
	assert.Equal(t, []string{"b", "c"}, buf.All())
}

func TestBuffer_ViewOfEmptyBufferIsNonNil(t *testing.T) {
	buf := NewDefault[string]()
	view := buf.View(func(string) bool { return true })
	assert.NotNil(t, view)
	assert.Len(t, view, 0)
}

func TestBuffer_LazyAllocation(t *testing.T) {
	var buf Buffer[string]

	assert.Nil(t, buf.All(), "reads do not allocate")
	assert.True(t, buf.IsEmpty())

	buf.Add("a")
	assert.Equal(t, DefaultInitialAddedSize, cap(buf.added))
	assert.Nil(t, buf.deleted)

	buf.Remove("a")
	assert.NotNil(t, buf.deleted)
	assert.True(t, buf.IsEmpty())
	assert.Nil(t, buf.deleted, "compaction releases the pending set")
	assert.Nil(t, buf.added, "compaction releases an emptied added sequence")
}

func TestBuffer_AllReturnsInternalSlice(t *testing.T) {
	buf := NewDefault[int]()
	buf.Add(1)
	buf.Add(2)

	all := buf.All()
	require.Len(t, all, 2)
	assert.Same(t, &buf.added[0], &all[0])
}

func TestBuffer_Stats(t *testing.T) {
	buf := NewDefault[int]()
	buf.Add(1)
	buf.Add(1)
	buf.Add(2)
	buf.Remove(1)
	buf.Remove(3)
	buf.IsEmpty()

	assert.Equal(t, Stats{Added: 3, Removed: 2, Compactions: 1, Discarded: 2}, buf.Stats())
}

func TestBuffer_Metrics(t *testing.T) {
	reg := metrics.NewRegistry()
	buf := New[int](Config{MaxDeletedSize: 1}).WithMetrics(reg)

	buf.Add(1)
	buf.Add(2)
	buf.Add(3)
	buf.Remove(1)
	buf.Remove(2) // crosses the threshold
	buf.Remove(3)
	buf.All()

	var m dto.Metric
	require.NoError(t, reg.RelationsAddedTotal.Write(&m))
	assert.Equal(t, 3.0, m.Counter.GetValue())

	require.NoError(t, reg.RelationsRemovedTotal.Write(&m))
	assert.Equal(t, 3.0, m.Counter.GetValue())

	for trigger, want := range map[Trigger]float64{TriggerThreshold: 1, TriggerRead: 1} {
		c, err := reg.CompactionsTotal.GetMetricWithLabelValues(string(trigger))
		require.NoError(t, err)
		require.NoError(t, c.Write(&m))
		assert.Equal(t, want, m.Counter.GetValue(), "trigger %s", trigger)
	}
}

func TestBuffer_LogsCompactionAtDebug(t *testing.T) {
	var out bytes.Buffer
	buf := NewDefault[int]().WithLogger(logging.NewJSONLogger(&out, logging.DebugLevel))

	buf.Add(1)
	buf.Add(2)
	buf.Remove(1)
	buf.IsEmpty()

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)

	var entry logging.LogEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "DEBUG", entry.Level)
	assert.Equal(t, "addedrelations", entry.Fields["component"])
	assert.Equal(t, "read", entry.Fields["trigger"])
	assert.Equal(t, float64(1), entry.Fields["pending"])
	assert.Equal(t, float64(1), entry.Fields["relations"])
}

func TestBuffer_SilentAboveDebug(t *testing.T) {
	var out bytes.Buffer
	buf := NewDefault[int]().WithLogger(logging.NewJSONLogger(&out, logging.InfoLevel))

	buf.Add(1)
	buf.Remove(1)
	buf.IsEmpty()

	assert.Zero(t, out.Len())
}

func TestEmpty(t *testing.T) {
	var c Container[string] = Empty[string]{}

	assert.False(t, c.Add("a"))
	assert.False(t, c.Remove("a"))
	assert.True(t, c.IsEmpty())
	assert.Empty(t, c.View(func(string) bool { return true }))
	assert.Empty(t, c.All())
}

func TestConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		assert.Equal(t, DefaultConfig(), Config{}.withDefaults())
		assert.NoError(t, DefaultConfig().Validate())
	})

	t.Run("zero means default", func(t *testing.T) {
		assert.NoError(t, Config{}.Validate())
		cfg := Config{MaxDeletedSize: 5}.withDefaults()
		assert.Equal(t, 5, cfg.MaxDeletedSize)
		assert.Equal(t, DefaultInitialAddedSize, cfg.InitialAddedSize)
	})

	t.Run("negative rejected", func(t *testing.T) {
		err := Config{InitialAddedSize: -1, MaxDeletedSize: -2}.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "InitialAddedSize")
		assert.Contains(t, err.Error(), "MaxDeletedSize")
	})
}
