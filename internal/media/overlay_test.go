package media

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rankreel/rankreel/internal/models"
)

func TestOverlayFilter_LabelAndEnvelope(t *testing.T) {
	filter := overlayFilter(3)

	assert.Contains(t, filter, "text='Rank #3'")
	assert.Contains(t, filter, "x=(w-text_w)/2")
	assert.Contains(t, filter, "fontcolor=white")
	assert.Contains(t, filter, "bordercolor=black")
	// Three-phase envelope: fade in to 0.5s, hold to 2.5s, fade out to 3.0s.
	assert.Contains(t, filter, "if(lt(t,0.5),t/0.5")
	assert.Contains(t, filter, "if(lt(t,2.5),1")
	assert.Contains(t, filter, "if(lt(t,3.0),(3.0-t)/0.5,0)")
}

func TestAddRankOverlay_ReencodesVideoOnly(t *testing.T) {
	run := &fakeRunner{}
	tool := newTestTool(run)

	require.NoError(t, tool.AddRankOverlay(context.Background(), "in.mp4", "out.mp4", 1))

	calls := run.recorded()
	require.Len(t, calls, 1)
	vf, ok := argValue(calls[0], "-vf")
	require.True(t, ok)
	assert.Contains(t, vf, "Rank #1")
	codec, ok := argValue(calls[0], "-c:a")
	require.True(t, ok)
	assert.Equal(t, "copy", codec)
}

func TestAddRankOverlay_ToolFailureIsFatal(t *testing.T) {
	run := &fakeRunner{handler: func(name string, args []string) ([]byte, error) {
		return []byte("no such filter: drawtext"), fmt.Errorf("exit status 1")
	}}
	tool := newTestTool(run)

	err := tool.AddRankOverlay(context.Background(), "in.mp4", "out.mp4", 2)
	require.Error(t, err)
	assert.Equal(t, models.ErrToolExecution, models.KindOf(err))
}
