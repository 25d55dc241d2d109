package profile

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ktreg/ktreg/internal/domain/donor"
	"github.com/ktreg/ktreg/internal/domain/followup"
	"github.com/ktreg/ktreg/internal/domain/patient"
	"github.com/ktreg/ktreg/internal/domain/recipient"
	"github.com/ktreg/ktreg/internal/domain/surgery"
)

// ErrPatientNotFound is the single fatal outcome of an aggregation: no
// identity record exists for the requested PHN.
var ErrPatientNotFound = errors.New("patient not found")

// Collaborator boundaries. The domain services satisfy these directly; tests
// substitute fakes.
type PatientSource interface {
	GetByPHN(ctx context.Context, phn string) (*patient.Patient, error)
}

type DonorSource interface {
	LatestByPHN(ctx context.Context, phn string) (*donor.AssessmentRecord, error)
}

type RecipientSource interface {
	LatestByPHN(ctx context.Context, phn string) (*recipient.AssessmentRecord, error)
}

type SurgerySource interface {
	LatestByPHN(ctx context.Context, phn string) (*surgery.Record, error)
}

type FollowUpSource interface {
	ListByPHN(ctx context.Context, phn string, f followup.Filter) ([]*followup.Note, error)
}

// Service assembles patient profiles. It keeps the last successfully fetched
// identity per PHN so a transient identity failure degrades to the cached
// demographics instead of failing the whole profile.
type Service struct {
	patients   PatientSource
	donors     DonorSource
	recipients RecipientSource
	surgeries  SurgerySource
	followups  FollowUpSource

	mu       sync.RWMutex
	lastSeen map[string]patient.Patient
}

func NewService(patients PatientSource, donors DonorSource, recipients RecipientSource, surgeries SurgerySource, followups FollowUpSource) *Service {
	return &Service{
		patients:   patients,
		donors:     donors,
		recipients: recipients,
		surgeries:  surgeries,
		followups:  followups,
		lastSeen:   make(map[string]patient.Patient),
	}
}

// GetProfile recomputes the aggregated view for one PHN. The identity fetch
// is mandatory: an unknown PHN fails the aggregation with ErrPatientNotFound.
// The four clinical sub-fetches run concurrently and fail soft; a missing or
// erroring section comes back as Available=false with a fully-typed empty
// record.
func (s *Service) GetProfile(ctx context.Context, phn string) (*PatientProfile, error) {
	if phn == "" {
		return nil, ErrPatientNotFound
	}

	p, err := s.patients.GetByPHN(ctx, phn)
	switch {
	case err == nil:
		s.mu.Lock()
		s.lastSeen[phn] = *p
		s.mu.Unlock()
	case errors.Is(err, patient.ErrNotFound):
		return nil, ErrPatientNotFound
	default:
		s.mu.RLock()
		cached, ok := s.lastSeen[phn]
		s.mu.RUnlock()
		if !ok {
			return nil, err
		}
		log.Warn().Err(err).Str("phn", phn).Msg("identity fetch failed, using cached demographics")
		p = &cached
	}

	prof := &PatientProfile{
		Patient:   *p,
		Donor:     DonorSection{Record: *donor.Normalize(nil)},
		Recipient: RecipientSection{Record: *recipient.Normalize(nil)},
		Surgery:   SurgerySection{Record: *surgery.Normalize(nil)},
		FollowUps: []*followup.Note{},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rec, err := s.donors.LatestByPHN(gctx, phn)
		if err != nil {
			if !errors.Is(err, donor.ErrNotFound) {
				log.Warn().Err(err).Str("phn", phn).Msg("donor section unavailable")
			}
			return nil
		}
		prof.Donor = DonorSection{Available: true, Record: *rec}
		return nil
	})

	g.Go(func() error {
		rec, err := s.recipients.LatestByPHN(gctx, phn)
		if err != nil {
			if !errors.Is(err, recipient.ErrNotFound) {
				log.Warn().Err(err).Str("phn", phn).Msg("recipient section unavailable")
			}
			return nil
		}
		prof.Recipient = RecipientSection{Available: true, Record: *rec}
		return nil
	})

	g.Go(func() error {
		rec, err := s.surgeries.LatestByPHN(gctx, phn)
		if err != nil {
			if !errors.Is(err, surgery.ErrNotFound) {
				log.Warn().Err(err).Str("phn", phn).Msg("surgery section unavailable")
			}
			return nil
		}
		prof.Surgery = SurgerySection{Available: true, Record: *rec}
		return nil
	})

	g.Go(func() error {
		notes, err := s.followups.ListByPHN(gctx, phn, followup.Filter{})
		if err != nil {
			log.Warn().Err(err).Str("phn", phn).Msg("follow-up list unavailable")
			return nil
		}
		if len(notes) > 0 {
			prof.FollowUps = notes
			prof.LatestFollowUp = *notes[len(notes)-1]
			prof.HasFollowUps = true
		}
		return nil
	})

	// Sub-fetches never return errors; Wait only joins the goroutines.
	_ = g.Wait()

	return prof, nil
}
