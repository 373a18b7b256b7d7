package service

import (
	"context"
	"fmt"
	"io"

	"pdf-tools-server/internal/domain"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

func init() {
	// pdfcpu would otherwise create a config directory in the user's home
	api.DisableConfigDir()
}

// ImageRemovalService drops image XObjects from every page of a PDF
type ImageRemovalService struct {
	logger domain.Logger
}

func NewImageRemovalService(logger domain.Logger) *ImageRemovalService {
	return &ImageRemovalService{logger: logger}
}

// RemoveImages reads a PDF from in, removes all images referenced by page
// resources (own or inherited) and writes the resulting document to out.
func (s *ImageRemovalService) RemoveImages(ctx context.Context, in io.ReadSeeker, out io.Writer) (*domain.ImageRemovalResult, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pdfCtx, err := api.ReadContext(in, conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPDF, err)
	}
	if err := pdfCtx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPDF, err)
	}

	result := &domain.ImageRemovalResult{PageCount: pdfCtx.PageCount}
	visited := make(map[int]bool)

	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pageDict, _, _, err := pdfCtx.PageDict(pageNr, false)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", domain.ErrInvalidPDF, pageNr, err)
		}

		removed, err := stripPageTree(pdfCtx.XRefTable, pageDict, visited)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", domain.ErrInvalidPDF, pageNr, err)
		}
		s.logger.Debug("Removed page images", "page", pageNr, "images", removed)
		result.ImagesRemoved += removed
	}

	if err := api.WriteContext(pdfCtx, out); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}

	s.logger.Info("Images removed from PDF", "pages", result.PageCount, "images", result.ImagesRemoved)
	return result, nil
}

// stripPageTree strips images from the page and from each ancestor Pages
// node, since resources can be inherited. Ancestors are processed once.
func stripPageTree(xRefTable *model.XRefTable, pageDict types.Dict, visited map[int]bool) (int, error) {
	removed, err := stripImageXObjects(xRefTable, pageDict)
	if err != nil {
		return 0, err
	}

	parent, found := pageDict.Find("Parent")
	for found && parent != nil {
		ref, ok := parent.(types.IndirectRef)
		if !ok {
			break
		}
		objNr := ref.ObjectNumber.Value()
		if visited[objNr] {
			break
		}
		visited[objNr] = true

		node, err := xRefTable.DereferenceDict(ref)
		if err != nil {
			return removed, err
		}
		if node == nil {
			break
		}

		n, err := stripImageXObjects(xRefTable, node)
		if err != nil {
			return removed, err
		}
		removed += n
		parent, found = node.Find("Parent")
	}
	return removed, nil
}

func stripImageXObjects(xRefTable *model.XRefTable, d types.Dict) (int, error) {
	obj, found := d.Find("Resources")
	if !found || obj == nil {
		return 0, nil
	}
	resources, err := xRefTable.DereferenceDict(obj)
	if err != nil || resources == nil {
		return 0, err
	}

	obj, found = resources.Find("XObject")
	if !found || obj == nil {
		return 0, nil
	}
	xObjects, err := xRefTable.DereferenceDict(obj)
	if err != nil || xObjects == nil {
		return 0, err
	}

	removed := 0
	for name, entry := range xObjects {
		sd, _, err := xRefTable.DereferenceStreamDict(entry)
		if err != nil {
			return removed, err
		}
		if sd == nil {
			continue
		}
		if subtype := sd.Subtype(); subtype != nil && *subtype == "Image" {
			delete(xObjects, name)
			removed++
		}
	}
	return removed, nil
}
