package writer

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/dtogen/pkg/code"
)

func TestWrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := New(fs, "/proj")

	dtoCode := code.New("User", code.CSharp, "class User {}", code.Partial())
	page := code.New("UserList", code.BlazorMarkup, "@page \"/users\"")

	written, err := w.Write(context.Background(),
		Target{Code: dtoCode, Layer: LayerDtos},
		Target{Code: nil, Layer: LayerDtos},
		Target{Code: code.Empty, Layer: "ignored"},
		Target{Code: page, Layer: LayerPages},
	)
	require.NoError(t, err)
	require.Len(t, written, 2)
	assert.Equal(t, "Dtos/User.partial.tmp.cs", written[0].Path)
	assert.Equal(t, "csharp", written[0].Language)
	assert.Equal(t, "Pages/UserList.razor", written[1].Path)
	assert.Equal(t, LayerPages, written[1].Layer)

	b, err := afero.ReadFile(fs, "/proj/Dtos/User.partial.tmp.cs")
	require.NoError(t, err)
	assert.Equal(t, "class User {}", string(b))

	ok, err := afero.DirExists(fs, "/proj/Pages")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWriteOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := New(fs, "out")
	ctx := context.Background()

	_, err := w.Write(ctx, Target{Code: code.New("a", code.Go, "v1"), Layer: LayerModels})
	require.NoError(t, err)
	_, err = w.Write(ctx, Target{Code: code.New("a", code.Go, "v2"), Layer: LayerModels})
	require.NoError(t, err)

	b, err := afero.ReadFile(fs, "out/models/a.go")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(b))
}

func TestWriteUnknownLayer(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := New(fs, "/proj", WithLayers(map[Layer]string{LayerDtos: "src/Dtos"}))

	_, err := w.Write(context.Background(),
		Target{Code: code.New("User", code.CSharp, "x"), Layer: LayerDtos},
		Target{Code: code.New("UserList", code.BlazorMarkup, "y"), Layer: LayerPages},
	)
	require.ErrorIs(t, err, ErrUnknownLayer)
	assert.Contains(t, err.Error(), "UserList")

	exists, err := afero.Exists(fs, "/proj/src/Dtos/User.cs")
	require.NoError(t, err)
	assert.False(t, exists, "nothing is written when a layer is unknown")
}

func TestWriteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(afero.NewMemMapFs(), "/").Write(ctx, Target{Code: code.New("a", code.Go, "x"), Layer: LayerModels})
	require.ErrorIs(t, err, context.Canceled)
}

func TestWriteReadOnly(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	_, err := New(fs, "/proj").Write(context.Background(), Target{Code: code.New("a", code.Go, "x"), Layer: LayerModels})
	require.Error(t, err)
}

func TestLayers(t *testing.T) {
	w := New(afero.NewMemMapFs(), "/")
	assert.Equal(t, []Layer{LayerComponents, LayerDtos, LayerModels, LayerPages}, w.Layers())

	dir, err := w.Folder(LayerComponents)
	require.NoError(t, err)
	assert.Equal(t, "Components", dir)

	_, err = w.Folder("nope")
	require.ErrorIs(t, err, ErrUnknownLayer)
}
