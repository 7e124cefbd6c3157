package refgen_test

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/obeng-labs/agencyledger/internal/utils/refgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refPattern = regexp.MustCompile(`^TXN-\d{13,}-\d{3}$`)

func TestGenerate_Format(t *testing.T) {
	ref := refgen.Generate()
	assert.Regexp(t, refPattern, ref)

	parts := strings.Split(ref, "-")
	require.Len(t, parts, 3)

	ms, err := strconv.ParseInt(parts[1], 10, 64)
	require.NoError(t, err)
	assert.InDelta(t, time.Now().UnixMilli(), ms, 5000, "timestamp component should be current")

	suffix, err := strconv.Atoi(parts[2])
	require.NoError(t, err)
	assert.GreaterOrEqual(t, suffix, 100)
	assert.LessOrEqual(t, suffix, 999)
}

func TestGenerate_MostlyUnique(t *testing.T) {
	// Not a uniqueness guarantee (the database enforces that); just a sanity
	// check that successive calls do not trivially repeat.
	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		seen[refgen.Generate()] = struct{}{}
		time.Sleep(time.Millisecond)
	}
	assert.Greater(t, len(seen), 90)
}
