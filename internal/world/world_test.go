package world

import (
	"context"
	"errors"
	"testing"
)

func newTestWorld(t *testing.T, gen Generator) *World {
	t.Helper()
	w, err := New(DefaultOptions(), testResolver(), gen)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w
}

func TestWorldGenerateArea(t *testing.T) {
	w := newTestWorld(t, FlatGenerator{Block: groundSpec})
	ctx := context.Background()

	if err := w.Generate(ctx, Area(ChunkCoord{}, 1), 4); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	chunks := w.Chunks()
	if len(chunks) != 9 {
		t.Fatalf("got %d chunks, want 9", len(chunks))
	}
	for i := 1; i < len(chunks); i++ {
		a, b := chunks[i-1].Coord, chunks[i].Coord
		if a.X > b.X || (a.X == b.X && a.Z >= b.Z) {
			t.Fatalf("chunks out of order: %v before %v", a, b)
		}
	}
	for _, c := range chunks {
		if c.State() != StateGenerated {
			t.Errorf("chunk %v state = %v, want generated", c.Coord, c.State())
		}
	}

	// a second call keeps existing chunks
	first, _ := w.Chunk(ChunkCoord{})
	if err := w.Generate(ctx, Area(ChunkCoord{}, 1), 2); err != nil {
		t.Fatalf("Generate again: %v", err)
	}
	again, _ := w.Chunk(ChunkCoord{})
	if first != again {
		t.Error("Generate replaced an existing chunk")
	}
}

func TestWorldPlaceAndLoad(t *testing.T) {
	w := newTestWorld(t, FlatGenerator{Block: groundSpec})
	ctx := context.Background()
	if err := w.Generate(ctx, []ChunkCoord{{X: 0, Z: 0}, {X: -1, Z: 0}}, 2); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := w.Place(Coord{-3, 2, 4}, lampSpec(redLamp)); err != nil {
		t.Fatalf("Place: %v", err)
	}
	if _, err := w.Place(Coord{5, 2, 5}, lampSpec(greenLamp)); err != nil {
		t.Fatalf("Place: %v", err)
	}
	if _, err := w.Place(Coord{40, 2, 5}, groundSpec); !errors.Is(err, ErrInvalidCoordinate) {
		t.Errorf("Place in missing chunk err = %v, want ErrInvalidCoordinate", err)
	}

	if err := w.LoadAll(ctx, 2); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	for _, c := range w.Chunks() {
		if c.State() != StateLoaded {
			t.Errorf("chunk %v state = %v, want loaded", c.Coord, c.State())
		}
	}

	b, ok := w.BlockAt(Coord{-3, 2, 4})
	if !ok || !b.Emissive() {
		t.Fatal("expected lamp at -3,2,4")
	}
	if b.Faces.Has(FaceBottom) {
		t.Error("lamp resting on ground kept its Bottom face")
	}
	if _, ok := w.BlockAt(Coord{-3, 50, 4}); ok {
		t.Error("found block in empty cell")
	}

	lights := w.PointLights()
	if len(lights) != 2 {
		t.Fatalf("got %d lights, want 2", len(lights))
	}
	// chunk -1 sorts before chunk 0
	if lights[0].PositionX != -3 || lights[1].PositionX != 5 {
		t.Errorf("light order = %v, %v", lights[0].PositionX, lights[1].PositionX)
	}

	// loading again is a no-op
	if err := w.LoadAll(ctx, 2); err != nil {
		t.Errorf("second LoadAll: %v", err)
	}
}

func TestWorldGenerateError(t *testing.T) {
	w := newTestWorld(t, FlatGenerator{Block: BlockSpec{Shader: "missing", Textures: "container2"}})
	err := w.Generate(context.Background(), Area(ChunkCoord{}, 0), 1)
	if err == nil {
		t.Fatal("expected generation error")
	}
	if len(w.Chunks()) != 0 {
		t.Error("failed chunk was stored")
	}
}

func TestWorldInvalidOptions(t *testing.T) {
	if _, err := New(Options{}, testResolver(), nil); !errors.Is(err, ErrInvalidExtent) {
		t.Errorf("New with zero options err = %v, want ErrInvalidExtent", err)
	}
}

func TestLoadPoolShutdown(t *testing.T) {
	w := newTestWorld(t, nil)
	p := NewLoadPool(context.Background(), w, 2, 4)

	results := make(chan LoadResult, 1)
	if err := p.SubmitJobBlocking(LoadJob{Coord: ChunkCoord{X: 2}, Stage: StageGenerate, ResultChan: results}); err != nil {
		t.Fatalf("SubmitJobBlocking: %v", err)
	}
	res := <-results
	if res.Err != nil || res.Chunk == nil || res.Chunk.Coord != (ChunkCoord{X: 2}) {
		t.Fatalf("unexpected result %+v", res)
	}
	p.Shutdown()

	// submitting to a stopped pool fails without panicking
	for i := 0; i < 3; i++ {
		err := p.SubmitJobBlocking(LoadJob{Coord: ChunkCoord{X: 3}, Stage: StageGenerate, ResultChan: results})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("submit after Shutdown err = %v, want context.Canceled", err)
		}
	}
}

func TestArea(t *testing.T) {
	if got := len(Area(ChunkCoord{X: 4, Z: -4}, 2)); got != 25 {
		t.Errorf("Area radius 2 has %d chunks, want 25", got)
	}
	if got := Area(ChunkCoord{X: 1, Z: 1}, 0); len(got) != 1 || got[0] != (ChunkCoord{X: 1, Z: 1}) {
		t.Errorf("Area radius 0 = %v", got)
	}
}
