package styles_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bnema/slickdir/internal/cli/styles"
	"github.com/bnema/slickdir/internal/domain/entity"
)

func TestConfigRenderer_RenderConfigInfo(t *testing.T) {
	r := styles.NewConfigRenderer(styles.NewTheme())

	out := r.RenderConfigInfo("/tmp/slickdir/config.toml", false)
	require.Contains(t, out, "config.toml")
	require.Contains(t, out, "created on first run")

	out = r.RenderConfigInfo("/tmp/slickdir/config.toml", true)
	require.Contains(t, out, "present")

	require.Contains(t, r.RenderSchemaWritten("/tmp/slickdir/config.schema.json"), "config.schema.json")
	require.Contains(t, r.RenderError(errors.New("bad toml")), "bad toml")
}

func TestConfigSchemaRenderer_GroupsBySection(t *testing.T) {
	r := styles.NewConfigSchemaRenderer(styles.NewTheme())

	out := r.Render([]entity.ConfigKeyInfo{
		{Key: "logging.level", Type: "string", Default: "info", Section: "Logging", Values: []string{"debug", "info"}},
		{Key: "extraction.max_hard_link_size", Type: "int", Default: "104857600", Section: "Extraction", Range: ">= 0"},
	})

	require.Contains(t, out, "Config Schema Reference")
	require.Contains(t, out, "Values: debug, info")
	require.Contains(t, out, "Range: >= 0")
	require.Less(t, indexOf(out, "extraction.max_hard_link_size"), indexOf(out, "logging.level"))

	require.Contains(t, r.Render(nil), "No configuration keys found")
}
