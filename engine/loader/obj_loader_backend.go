package loader

import (
	"context"
	"strings"

	"github.com/Carmen-Shannon/oxy-viewer/engine/fetch"
	"go.uber.org/zap"
)

// objLoaderBackend imports Wavefront OBJ models and their MTL material libraries.
type objLoaderBackend struct {
	fetcher fetch.Fetcher
	opts    *importOptions
}

var _ loaderBackend = &objLoaderBackend{}

// newOBJLoaderBackend creates an OBJ backend reading through the given fetcher.
// The options pointer is shared with the Loader so builder options apply after construction.
func newOBJLoaderBackend(f fetch.Fetcher, opts *importOptions) *objLoaderBackend {
	return &objLoaderBackend{
		fetcher: f,
		opts:    opts,
	}
}

func (b *objLoaderBackend) Import(ctx context.Context, name string) (*importedModel, error) {
	text, err := b.fetcher.FetchText(ctx, name)
	if err != nil {
		return nil, err
	}
	doc, err := scanOBJDirectives(name, text)
	if err != nil {
		return nil, err
	}

	var mtls []mtlMaterial
	var mtlText strings.Builder
	for _, lib := range doc.MaterialLibs {
		libName := resolveRef(name, lib)
		libText, err := b.fetcher.FetchText(ctx, libName)
		if err != nil {
			return nil, err
		}
		scanned, err := scanMTL(libName, libText)
		if err != nil {
			return nil, err
		}
		mtlText.WriteString(libText)
		mtlText.WriteByte('\n')
		b.opts.log.Debug("read material library",
			zap.String("library", libName),
			zap.Int("materials", len(scanned)),
		)
		mtls = append(mtls, scanned...)
	}

	decoded, err := decodeOBJ(doc, name, text, mtlText.String())
	if err != nil {
		return nil, err
	}
	mergeDecodedMaterials(mtls, decoded)
	for i := range mtls {
		if mtls[i].DiffuseMap != "" {
			mtls[i].DiffuseMap = resolveRef(mtls[i].Library, mtls[i].DiffuseMap)
		}
		if mtls[i].NormalMap != "" {
			mtls[i].NormalMap = resolveRef(mtls[i].Library, mtls[i].NormalMap)
		}
	}

	return buildModel(name, doc, mtls, *b.opts)
}
