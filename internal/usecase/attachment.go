package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"reclaim/internal/domain/entity"
	"reclaim/internal/domain/service"
	"reclaim/pkg/errors"
)

// AttachmentPolicy bounds what may be attached to a message.
type AttachmentPolicy struct {
	MaxBytes     int64
	AllowedTypes []string
}

func (p AttachmentPolicy) allows(contentType string) bool {
	for _, t := range p.AllowedTypes {
		if t == contentType {
			return true
		}
	}
	return false
}

// StagedAttachment is a validated attachment waiting for upload.
type StagedAttachment struct {
	Data        []byte
	ContentType string
	Filename    string
}

// AttachmentPipeline validates and uploads message photo attachments.
type AttachmentPipeline struct {
	fileService service.FileUploadService
	policy      AttachmentPolicy
}

func NewAttachmentPipeline(fileService service.FileUploadService, policy AttachmentPolicy) *AttachmentPipeline {
	return &AttachmentPipeline{
		fileService: fileService,
		policy:      policy,
	}
}

// Stage validates the attachment before any bytes move. Type and size
// violations are InvalidAttachment errors; the caller is expected to surface
// them next to the draft rather than abort it.
func (p *AttachmentPipeline) Stage(file io.Reader, contentType, filename string) (*StagedAttachment, error) {
	if !p.policy.allows(contentType) {
		return nil, errors.InvalidAttachment(fmt.Sprintf("File type %s is not allowed", contentType), nil)
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(file, p.policy.MaxBytes+1))
	if err != nil {
		return nil, errors.Internal("Failed to read attachment", err)
	}
	if n > p.policy.MaxBytes {
		return nil, errors.InvalidAttachment(fmt.Sprintf("File exceeds the %d byte limit", p.policy.MaxBytes), nil)
	}

	return &StagedAttachment{
		Data:        buf.Bytes(),
		ContentType: contentType,
		Filename:    filename,
	}, nil
}

// Upload pushes a staged attachment to object storage and returns its URL.
func (p *AttachmentPipeline) Upload(ctx context.Context, staged *StagedAttachment) (string, error) {
	url, err := p.fileService.UploadFile(ctx, bytes.NewReader(staged.Data), staged.ContentType, "message_photos", true)
	if err != nil {
		return "", errors.BackendUnavailable("Failed to upload attachment", err)
	}
	return url, nil
}

// UploadAndAttach uploads a staged attachment and sets the resulting URL on
// the draft. The draft is untouched when the upload fails.
func (p *AttachmentPipeline) UploadAndAttach(ctx context.Context, staged *StagedAttachment, draft *entity.Message) error {
	url, err := p.Upload(ctx, staged)
	if err != nil {
		return err
	}

	draft.PhotoURL = url
	return nil
}
