package tests

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Handlers share nothing mutable beyond read-only configuration, so parallel
// batches must never see each other's items or shuffle their own ordering.
func TestConcurrent_Batches(t *testing.T) {
	ai := FakeOpenAI(t, "unused")
	defer ai.Close()
	motionSrv, rec := FakeMotion(t)
	defer motionSrv.Close()

	srv := SetupServer(t, ai.URL, motionSrv.URL)

	const batches = 8
	const itemsPerBatch = 3

	var wg sync.WaitGroup
	responses := make([]map[string]any, batches)
	codes := make([]int, batches)

	for b := 0; b < batches; b++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			tasks := make([]map[string]any, 0, itemsPerBatch)
			for i := 0; i < itemsPerBatch; i++ {
				tasks = append(tasks, map[string]any{
					"title": fmt.Sprintf("batch-%d-item-%d", idx, i),
				})
			}

			resp := postJSON(t, srv.URL+"/add-tasks", map[string]any{"tasks": tasks})
			codes[idx] = resp.StatusCode
			responses[idx] = decodeBody(t, resp)
		}(b)
	}

	wg.Wait()

	for b := 0; b < batches; b++ {
		require.Equal(t, http.StatusOK, codes[b], "batch %d", b)

		created, ok := responses[b]["created"].([]any)
		require.True(t, ok, "batch %d", b)
		require.Len(t, created, itemsPerBatch, "batch %d", b)

		for i, raw := range created {
			item := raw.(map[string]any)
			assert.Equal(t, float64(i), item["index"])
			assert.Equal(t, "ok", item["status"])

			task := item["task"].(map[string]any)
			assert.Equal(t, fmt.Sprintf("batch-%d-item-%d", b, i), task["title"])
		}
	}

	assert.Equal(t, batches*itemsPerBatch, rec.Count())
}
