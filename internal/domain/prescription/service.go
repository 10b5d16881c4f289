package prescription

import (
	"context"
	"io"
)

type Service interface {
	CreatePrescription(ctx context.Context, req CreatePrescriptionRequest) (PrescriptionResponse, error)
	GetPrescription(ctx context.Context, id string) (PrescriptionResponse, error)
	ListPrescriptions(ctx context.Context, patientID string) ([]PrescriptionResponse, error)
	DeletePrescription(ctx context.Context, id string) error

	UploadDocument(ctx context.Context, req UploadDocumentRequest) (PrescriptionResponse, error)
	DownloadDocument(ctx context.Context, id string) (io.ReadCloser, string, error)
	RemoveDocument(ctx context.Context, id string) error
}
