package patient

import "context"

type Service interface {
	CreatePatient(ctx context.Context, req CreatePatientRequest) (PatientResponse, error)
	GetPatient(ctx context.Context, id string) (PatientResponse, error)
	ListPatients(ctx context.Context, search string, limit, offset int) (ListPatientsResponse, error)
	UpdatePatient(ctx context.Context, req UpdatePatientRequest) (PatientResponse, error)
	DeletePatient(ctx context.Context, id string) error
}
