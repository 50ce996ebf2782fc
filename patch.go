package wiremodel

import (
	jsonpatch "github.com/evanphx/json-patch"

	"github.com/wiremodel/wiremodel-go/debug"
	"github.com/wiremodel/wiremodel-go/encode"
	"github.com/wiremodel/wiremodel-go/model"
	"github.com/wiremodel/wiremodel-go/raw"
)

// MergePatch applies an RFC 7386 merge patch to a model and returns a
// new instance of the same type.  Patch nulls delete wire keys, the
// merge-patch counterpart of the model's delete-on-nil write
// semantics.
func MergePatch(m *model.Model, patch []byte) (*model.Model, error) {
	doc, err := encode.JSON(m)
	if err != nil {
		return nil, err
	}
	merged, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return nil, err
	}
	if debug.Patch() {
		debug.Logf("merge patch %s -> %s\n", doc, merged)
	}
	return decodeInto(m, merged)
}

// ApplyPatch applies an RFC 6902 patch document to a model and returns
// a new instance of the same type.
func ApplyPatch(m *model.Model, patchDoc []byte) (*model.Model, error) {
	ops, err := jsonpatch.DecodePatch(patchDoc)
	if err != nil {
		return nil, err
	}
	doc, err := encode.JSON(m)
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(doc)
	if err != nil {
		return nil, err
	}
	if debug.Patch() {
		debug.Logf("patch %s -> %s\n", doc, out)
	}
	return decodeInto(m, out)
}

func decodeInto(m *model.Model, doc []byte) (*model.Model, error) {
	rm, err := raw.FromJSON(doc)
	if err != nil {
		return nil, err
	}
	return m.Type().From(rm)
}
