package styles_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/slickdir/internal/application/usecase"
	"github.com/bnema/slickdir/internal/cli/styles"
	"github.com/bnema/slickdir/internal/domain/classify"
)

func TestExtractCLIRenderer_Unsupported(t *testing.T) {
	r := styles.NewExtractCLIRenderer(styles.NewTheme())

	out := r.RenderResult("/tmp/ws", &usecase.ExtractClipboardOutput{})

	assert.Contains(t, out, "/tmp/ws")
	assert.Contains(t, out, "no supported format")
}

func TestExtractCLIRenderer_Summary(t *testing.T) {
	r := styles.NewExtractCLIRenderer(styles.NewTheme())

	out := r.RenderResult("/tmp/ws", &usecase.ExtractClipboardOutput{
		Branches: []usecase.Branch{usecase.BranchText, usecase.BranchFileDrop, usecase.BranchImage},
		Label:    classify.LabelJSON,
		URLs: []*usecase.FetchURLOutput{
			{StatusCode: 200, ResponsePath: "/tmp/ws/clipboard.jpeg", TranscodedPath: "/tmp/ws/clipboard.png"},
			{StatusCode: 404, ResponsePath: "/tmp/ws/clipboard.url.response", Rejected: true},
		},
		Replicated: &usecase.ReplicateFilesOutput{
			Results:     []usecase.FileResult{{Source: "a"}, {Source: "b", Err: errors.New("gone")}},
			Directories: 1,
		},
		HTMLImages: 2,
		Image:      &usecase.MaterializeImageOutput{Written: []string{"/tmp/ws/clipboard.png"}},
		Errors:     []error{errors.New("csv unreadable")},
	})

	assert.Contains(t, out, "file-drop")
	assert.Contains(t, out, string(classify.LabelJSON))
	assert.Contains(t, out, "clipboard.jpeg + clipboard.png")
	assert.Contains(t, out, "404")
	assert.Contains(t, out, "1 copied, 1 directories, 1 failed")
	assert.Contains(t, out, "HTML images")
	assert.Contains(t, out, "csv unreadable")
}

func TestExtractCLIRenderer_Declined(t *testing.T) {
	r := styles.NewExtractCLIRenderer(styles.NewTheme())

	out := r.RenderResult("/tmp/ws", &usecase.ExtractClipboardOutput{
		Branches: []usecase.Branch{usecase.BranchFileDrop},
		Declined: true,
	})

	assert.Contains(t, out, "declined")
}
