package uploads

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/Branis333/Brainink-afterskool-sub003/internal/api"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/platform/logger"
)

// Service is the bulk-upload collaborator: it converts a set of captured
// images into a single stored PDF, tagged with the curriculum ids the
// grading pipeline needs.
type Service struct {
	log *logger.Logger
	api *api.Client
}

func New(log *logger.Logger, apiClient *api.Client) *Service {
	return &Service{
		log: log.With("service", "UploadsService"),
		api: apiClient,
	}
}

type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}

type BulkUploadRequest struct {
	CourseID       int
	AssignmentID   int
	BlockID        *int
	SubmissionType string // homework | quiz | practice | assessment
	Images         []ImageFile
}

// UploadResult references the produced PDF for the submission payload.
type UploadResult struct {
	FilePath string `json:"file_path"`
	PDFURL   string `json:"pdf_url"`
	Pages    int    `json:"pages"`
}

// ImagesToPDF uploads the images and returns the stored PDF reference.
// Mutating, so failures surface on first error.
func (s *Service) ImagesToPDF(ctx context.Context, req BulkUploadRequest) (UploadResult, error) {
	var out UploadResult
	if len(req.Images) == 0 {
		return out, fmt.Errorf("at least one image required")
	}
	if strings.TrimSpace(req.SubmissionType) == "" {
		return out, fmt.Errorf("submission type required")
	}

	err := s.api.DoMultipart(ctx, "/after-school/uploads/bulk-to-pdf", func(w *multipart.Writer) error {
		if err := w.WriteField("course_id", strconv.Itoa(req.CourseID)); err != nil {
			return err
		}
		if err := w.WriteField("assignment_id", strconv.Itoa(req.AssignmentID)); err != nil {
			return err
		}
		if req.BlockID != nil {
			if err := w.WriteField("block_id", strconv.Itoa(*req.BlockID)); err != nil {
				return err
			}
		}
		if err := w.WriteField("submission_type", req.SubmissionType); err != nil {
			return err
		}
		for i, img := range req.Images {
			name := strings.TrimSpace(img.Name)
			if name == "" {
				name = fmt.Sprintf("page-%d.jpg", i+1)
			}
			contentType := strings.TrimSpace(img.ContentType)
			if contentType == "" {
				contentType = "image/jpeg"
			}
			part, err := w.CreatePart(fileHeader("images", name, contentType))
			if err != nil {
				return err
			}
			if _, err := part.Write(img.Data); err != nil {
				return err
			}
		}
		return nil
	}, &out)
	if err != nil {
		return UploadResult{}, err
	}

	s.log.Debug("bulk upload complete",
		"course_id", req.CourseID,
		"assignment_id", req.AssignmentID,
		"images", len(req.Images),
		"file_path", out.FilePath,
	)
	return out, nil
}

func fileHeader(field, filename, contentType string) textproto.MIMEHeader {
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	h.Set("Content-Type", contentType)
	return h
}
