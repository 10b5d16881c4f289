package prescription

import "context"

type PrescriptionRepository interface {
	Create(ctx context.Context, p *Prescription) error
	GetByID(ctx context.Context, id string) (*Prescription, error)
	ListByPatient(ctx context.Context, patientID string) ([]Prescription, error)
	Update(ctx context.Context, p *Prescription) error
	SetDocumentPath(ctx context.Context, id string, path *string) error
	SoftDelete(ctx context.Context, id string) error
}
