// Package profile resuelve el rol de una identidad: admin dueño de una empresa,
// manager asignado a un salón o ninguno.
package profile

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/fedrita-api/internal/domain"
	"github.com/jhoicas/fedrita-api/internal/domain/entity"
	"github.com/jhoicas/fedrita-api/internal/domain/repository"
)

// managedSalonProbe filas pedidas al buscar salones gestionados: con dos basta para
// detectar la ambigüedad.
const managedSalonProbe = 2

// HintStore destino de la pista de empresa (almacén del cliente).
type HintStore interface {
	SaveCompanyHint(ctx context.Context, company *entity.Company) error
	ClearCompanyHint(ctx context.Context) error
}

// Resolver calcula el Profile de una identidad a partir de empresas y salones.
// No guarda estado: se comparte entre todos los clientes.
type Resolver struct {
	companies repository.CompanyRepository
	salons    repository.SalonRepository
	log       zerolog.Logger
}

// NewResolver construye el resolver.
func NewResolver(companies repository.CompanyRepository, salons repository.SalonRepository, log zerolog.Logger) *Resolver {
	return &Resolver{companies: companies, salons: salons, log: log}
}

// Resolve devuelve el perfil de identityID. Nunca falla: cualquier error de consulta
// se registra y el resultado es NoProfile.
//
// Dos consultas en paralelo:
//  1. empresa con owner_id = identityID
//  2. salón con manager_id = identityID
//
// Si hay empresa gana admin. Si solo hay salón, una tercera consulta trae la empresa
// dueña del salón.
func (r *Resolver) Resolve(ctx context.Context, identityID string) entity.Profile {
	if identityID == "" {
		return entity.NoProfile()
	}
	log := r.log.With().Str("identity_id", identityID).Logger()

	type companyResult struct {
		company *entity.Company
		err     error
	}
	type salonsResult struct {
		salons []*entity.Salon
		err    error
	}

	companyCh := make(chan companyResult, 1)
	salonsCh := make(chan salonsResult, 1)

	go func() {
		c, err := r.companies.FindByOwner(ctx, identityID)
		companyCh <- companyResult{c, err}
	}()
	go func() {
		s, err := r.salons.FindByManager(ctx, identityID, managedSalonProbe)
		salonsCh <- salonsResult{s, err}
	}()

	owned := <-companyCh
	managed := <-salonsCh

	if owned.err != nil {
		log.Error().Err(domain.Lookup("buscar empresa por owner", owned.err)).Msg("resolución de perfil degradada a none")
		return entity.NoProfile()
	}
	if owned.company != nil {
		return entity.AdminProfile(*owned.company)
	}

	if managed.err != nil {
		log.Error().Err(domain.Lookup("buscar salón por manager", managed.err)).Msg("resolución de perfil degradada a none")
		return entity.NoProfile()
	}
	if len(managed.salons) == 0 {
		return entity.NoProfile()
	}
	salon := managed.salons[0]
	if len(managed.salons) > 1 {
		log.Warn().Str("salon_id", salon.ID).Str("ignored_salon_id", managed.salons[1].ID).
			Msg("la identidad gestiona varios salones; se usa el más antiguo")
	}

	parent, err := r.companies.GetByID(ctx, salon.CompanyID)
	if err != nil {
		log.Error().Err(domain.Lookup("buscar empresa del salón", err)).Msg("resolución de perfil degradada a none")
		return entity.NoProfile()
	}
	if parent == nil {
		log.Warn().Str("salon_id", salon.ID).Str("company_id", salon.CompanyID).Msg("empresa del salón no encontrada")
	}
	return entity.ManagerProfile(*salon, parent)
}

// CacheHint guarda la empresa del perfil como pista de visualización, o la borra si el
// perfil no tiene empresa. Los fallos solo se registran.
func (r *Resolver) CacheHint(ctx context.Context, hints HintStore, p entity.Profile) {
	var err error
	if c := p.Company(); c != nil {
		err = hints.SaveCompanyHint(ctx, c)
	} else {
		err = hints.ClearCompanyHint(ctx)
	}
	if err != nil {
		r.log.Warn().Err(err).Msg("no se pudo actualizar la pista de empresa")
	}
}
