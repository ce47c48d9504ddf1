package server

import (
	"errors"
	"io"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mediavault/mediavault/internal/usecase"
)

// Asset is the JSON shape of one asset record. Field names match the
// documents in the files collection.
type Asset struct {
	ID         string `json:"_id"`
	Filename   string `json:"filename"`
	FileURL    string `json:"fileUrl"`
	UploadedAt string `json:"uploadedAt"`
}

func (s *Server) UploadAssets(ctx echo.Context) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return ctx.JSON(400, map[string]string{"error": "File upload failed"})
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		return ctx.JSON(400, map[string]string{"error": "File upload failed"})
	}

	files := make([]usecase.File, 0, len(headers))
	for _, fh := range headers {
		src, err := fh.Open()
		if err != nil {
			return ctx.JSON(400, map[string]string{"error": "File upload failed"})
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return ctx.JSON(400, map[string]string{"error": "File upload failed"})
		}
		files = append(files, usecase.File{
			Name: fh.Filename,
			MIME: fh.Header.Get("Content-Type"),
			Data: data,
		})
	}

	saved, err := s.server.UploadAssets(ctx.Request().Context(), files)
	if err != nil {
		var ve *usecase.ValidationError
		if errors.As(err, &ve) {
			return ctx.JSON(400, map[string]string{"error": ve.Error()})
		}
		s.logger.Error("saving file metadata", "err", err, "saved", len(saved))
		return ctx.JSON(500, map[string]string{"error": "Error saving file metadata"})
	}

	list := make([]Asset, 0, len(saved))
	for _, a := range saved {
		list = append(list, toAsset(a))
	}

	return ctx.JSON(200, map[string]any{
		"message": "Files uploaded successfully!",
		"files":   list,
	})
}

func (s *Server) ListAssets(ctx echo.Context) error {
	assets, err := s.server.ListAssets(ctx.Request().Context())
	if err != nil {
		s.logger.Error("fetching files", "err", err)
		return ctx.JSON(500, map[string]string{"error": "Error fetching files"})
	}

	list := make([]Asset, 0, len(assets))
	for _, a := range assets {
		list = append(list, toAsset(a))
	}

	return ctx.JSON(200, list)
}

type DeleteAssetRequest struct {
	ID string `param:"id" validate:"required"`
}

func (s *Server) DeleteAsset(ctx echo.Context) error {
	var req DeleteAssetRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	err := s.server.DeleteAsset(ctx.Request().Context(), req.ID)
	if errors.Is(err, usecase.ErrNotFound) {
		return ctx.JSON(404, map[string]string{"error": "File not found"})
	}
	if err != nil {
		s.logger.Error("deleting file", "id", req.ID, "err", err)
		return ctx.JSON(500, map[string]string{"error": "Error deleting file"})
	}

	return ctx.JSON(200, map[string]string{"message": "File deleted successfully"})
}

func toAsset(a usecase.Asset) Asset {
	return Asset{
		ID:         a.ID,
		Filename:   a.Filename,
		FileURL:    a.FileURL,
		UploadedAt: a.UploadedAt.UTC().Format(time.RFC3339),
	}
}
