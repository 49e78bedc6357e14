package render

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/gradable-block-service/internal/models"
)

func ptr[T any](v T) *T { return &v }

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer("/static/block")
	require.NoError(t, err)
	return r
}

func studentContext() *models.RenderContext {
	return &models.RenderContext{
		Meta: models.RenderMeta{
			Location: "block-v1:org+cs101+2025+type@gradable+block@b1",
			ID:       "b1",
			Name:     ptr("Lab 1"),
			Text:     "**bold** <script>alert(1)</script>",
			Due:      ptr("01.02.2025 10:00:00"),
		},
		StudentState: models.StudentState{
			Score:   models.ScoreState{Earned: ptr(5.0), Max: ptr(10.0), String: "(5.0/10 points)"},
			IsStaff: true,
		},
	}
}

func TestStudentView(t *testing.T) {
	r := newTestRenderer(t)

	frag, err := r.StudentView(nil, studentContext())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/static/block/js/block-utils.js",
		"/static/block/js/block.js",
		"/static/block/js/modals/init-modals.js",
		"/static/block/js/modals/state-modal.js",
		"/static/block/js/modals/debug-info-modal.js",
	}, frag.JS)
	assert.Equal(t, []string{"/static/block/css/base.css", "/static/block/css/modal.css"}, frag.CSS)
	assert.Empty(t, frag.JSInitFn)

	assert.Contains(t, frag.Content, "Lab 1")
	assert.Contains(t, frag.Content, "(5.0/10 points)")
	assert.Contains(t, frag.Content, "<strong>bold</strong>")
	assert.NotContains(t, frag.Content, "<script>")
	assert.Contains(t, frag.Content, "01.02.2025 10:00:00")
	assert.Contains(t, frag.Content, "state-modal")

	rc := frag.Context["render_context"].(map[string]interface{})
	meta := rc["meta"].(map[string]interface{})
	assert.Equal(t, "b1", meta["id"])
}

func TestStudentView_NonStaffHidesControls(t *testing.T) {
	r := newTestRenderer(t)
	rc := studentContext()
	rc.StudentState.IsStaff = false
	rc.Meta.Name = nil
	rc.Meta.Due = nil

	frag, err := r.StudentView(nil, rc)
	require.NoError(t, err)

	assert.NotContains(t, frag.Content, "state-modal")
	assert.NotContains(t, frag.Content, "gradable-block-due")
	assert.NotContains(t, frag.Content, "<no value>")
}

func TestStudentView_MergesCallerContext(t *testing.T) {
	r := newTestRenderer(t)
	caller := map[string]interface{}{
		"theme": "dark",
		"render_context": map[string]interface{}{
			"extra": "kept",
			"meta":  map[string]interface{}{"id": "overwritten"},
		},
	}

	frag, err := r.StudentView(caller, studentContext())
	require.NoError(t, err)

	assert.Equal(t, "dark", frag.Context["theme"])
	rc := frag.Context["render_context"].(map[string]interface{})
	assert.Equal(t, "kept", rc["extra"])
	assert.Equal(t, "b1", rc["meta"].(map[string]interface{})["id"])
}

func TestStudioView(t *testing.T) {
	r := newTestRenderer(t)
	sc := &models.SettingsContext{
		ID: "block-v1:org+cs101+2025+type@gradable+block@b1",
		Metadata: models.SettingsMetadata{
			DisplayName: ptr("Lab 1"),
			Weight:      ptr(2.5),
		},
	}

	frag, err := r.StudioView(map[string]interface{}{}, sc)
	require.NoError(t, err)

	assert.Equal(t, "BlockSettingsView", frag.JSInitFn)
	assert.Equal(t, []string{"/static/block/js/block-utils.js", "/static/block/js/block-studio.js"}, frag.JS)
	assert.Equal(t, []string{"/static/block/css/settings.css"}, frag.CSS)
	assert.Contains(t, frag.Content, `value="Lab 1"`)
	assert.Contains(t, frag.Content, `value="2.5"`)
	assert.NotContains(t, frag.Content, "<no value>")
}

func TestStudioView_KeepsZeroValues(t *testing.T) {
	r := newTestRenderer(t)
	sc := &models.SettingsContext{
		ID: "block-v1:org+cs101+2025+type@gradable+block@b1",
		Metadata: models.SettingsMetadata{
			Weight:   ptr(0.0),
			Attempts: ptr(0),
		},
	}

	frag, err := r.StudioView(nil, sc)
	require.NoError(t, err)

	assert.Contains(t, frag.Content, `name="weight" step="any" min="0" value="0"`)
	assert.Contains(t, frag.Content, `name="attempts" min="0" value="0"`)
	assert.Contains(t, frag.Content, `name="display_name" value=""`)
}

func TestFormValue(t *testing.T) {
	assert.Equal(t, "", formValue(nil))
	assert.Equal(t, "0", formValue(0.0))
	assert.Equal(t, "1000000", formValue(1e6))
	assert.Equal(t, "2.5", formValue(2.5))
	assert.Equal(t, "Lab 1", formValue("Lab 1"))
}

func TestDeepUpdate(t *testing.T) {
	dst := map[string]interface{}{
		"a": map[string]interface{}{"x": 1, "y": 2},
		"b": "old",
	}
	deepUpdate(dst, map[string]interface{}{
		"a": map[string]interface{}{"y": 3, "z": 4},
		"b": map[string]interface{}{"new": true},
	})

	assert.Equal(t, map[string]interface{}{"x": 1, "y": 3, "z": 4}, dst["a"])
	assert.Equal(t, map[string]interface{}{"new": true}, dst["b"])
}

func TestAssets(t *testing.T) {
	for _, name := range append(append([]string{}, studentJS...), studioJS...) {
		_, err := fs.Stat(Assets(), "js/"+name)
		assert.NoError(t, err, name)
	}
	for _, name := range append(append([]string{}, studentCSS...), studioCSS...) {
		_, err := fs.Stat(Assets(), "css/"+name)
		assert.NoError(t, err, name)
	}
}
