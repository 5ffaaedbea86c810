package raster_test

import (
	"context"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/uifirst/internal/adapters/raster"
	"go.trai.ch/uifirst/internal/core/domain"
)

func renderTask(generation uint64, dirty domain.Rect) *domain.RenderTask {
	return &domain.RenderTask{
		NodeID:     10,
		Generation: generation,
		Params: domain.CacheParams{
			NodeID:      10,
			Size:        domain.Size{Width: 200, Height: 400},
			DirtyRect:   dirty,
			TargetGamut: domain.GamutDisplayP3,
			HDRPresent:  true,
		},
		SubSurfaces: []domain.NodeID{11, 12},
	}
}

func TestRenderer_Render(t *testing.T) {
	r := raster.NewRenderer(0)

	surface, err := r.Render(context.Background(), renderTask(3, domain.Rect{Width: 5, Height: 5}))
	require.NoError(t, err)

	assert.Equal(t, domain.NodeID(10), surface.NodeID)
	assert.Equal(t, uint64(3), surface.Generation)
	assert.Equal(t, domain.Size{Width: 200, Height: 400}, surface.Size)
	assert.Equal(t, domain.GamutDisplayP3, surface.Gamut)
	assert.True(t, surface.FP16)
	assert.Equal(t, 3, surface.ProcessedNodes)
	assert.Equal(t, []domain.NodeID{11, 12}, surface.DrawnSurfaces)
	assert.NotZero(t, surface.ContentHash)
}

func TestRenderer_ContentHash(t *testing.T) {
	r := raster.NewRenderer(0)
	dirty := domain.Rect{Width: 5, Height: 5}

	hash := func(task *domain.RenderTask) uint64 {
		t.Helper()
		s, err := r.Render(context.Background(), task)
		require.NoError(t, err)
		return s.ContentHash
	}

	clean1 := hash(renderTask(1, domain.Rect{}))
	clean2 := hash(renderTask(2, domain.Rect{}))
	assert.Equal(t, clean1, clean2, "an undamaged subtree keeps its content")

	damaged1 := hash(renderTask(1, dirty))
	damaged2 := hash(renderTask(2, dirty))
	assert.NotEqual(t, damaged1, damaged2, "damage produces new content every generation")
	assert.NotEqual(t, clean1, damaged1)

	children := renderTask(2, domain.Rect{})
	children.Params.ChildrenDirtyRect = dirty
	assert.NotEqual(t, clean2, hash(children))

	regamut := renderTask(2, domain.Rect{})
	regamut.Params.TargetGamut = domain.GamutSRGB
	assert.NotEqual(t, clean2, hash(regamut))
}

func TestRenderer_DelayHonorsContext(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		r := raster.NewRenderer(time.Second)

		ctx, cancel := context.WithCancel(t.Context())
		errCh := make(chan error, 1)
		go func() {
			_, err := r.Render(ctx, renderTask(1, domain.Rect{}))
			errCh <- err
		}()

		time.Sleep(100 * time.Millisecond)
		cancel()
		err := <-errCh
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrRenderFailed.Error())
	})
}

func TestRenderer_ReleaseIdle(t *testing.T) {
	r := raster.NewRenderer(0)
	_, err := r.Render(context.Background(), renderTask(1, domain.Rect{}))
	require.NoError(t, err)
	assert.Equal(t, 1, r.Idle())

	r.ReleaseIdle()
	assert.Equal(t, 0, r.Idle())
}
