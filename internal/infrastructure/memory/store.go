// Package memory implementa los puertos de persistencia del motor de
// inventario sobre estructuras en memoria. Sostiene el mismo contrato de
// atomicidad que el adaptador PostgreSQL: las mutaciones de una transacción
// se aplican sobre una copia del estado y solo se publican si la operación
// completa tuvo éxito, así los lectores siempre observan un snapshot
// consistente. Pensado para tests y demos sin base de datos.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/tu-usuario/stockcontrol-api/internal/application/ledger"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/entity"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*Store)(nil)

// Store contiene el estado completo del inventario en memoria.
type Store struct {
	mu        sync.RWMutex
	materials map[string]*entity.Material
	projects  map[string]*entity.Project
	movements []*entity.MovementTransaction
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		materials: make(map[string]*entity.Material),
		projects:  make(map[string]*entity.Project),
	}
}

// Run ejecuta fn sobre una copia del estado y, solo si fn no falla, publica
// la copia como estado vigente. El lock global serializa las mutaciones
// (disciplina de un escritor a la vez).
func (s *Store) Run(ctx context.Context, fn func(
	materialRepo repository.MaterialRepository,
	projectRepo repository.ProjectRepository,
	movementRepo repository.MovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := &txState{
		materials: cloneMaterials(s.materials),
		projects:  cloneProjects(s.projects),
		movements: append([]*entity.MovementTransaction(nil), s.movements...),
	}
	if err := fn(&materialRepo{state: staged}, &projectRepo{state: staged}, &movementRepo{state: staged}); err != nil {
		return err
	}
	s.materials = staged.materials
	s.projects = staged.projects
	s.movements = staged.movements
	return nil
}

// Materials devuelve la vista repositorio de materiales (fuera de transacción).
func (s *Store) Materials() repository.MaterialRepository { return &storeMaterialRepo{store: s} }

// Projects devuelve la vista repositorio de proyectos (fuera de transacción).
func (s *Store) Projects() repository.ProjectRepository { return &storeProjectRepo{store: s} }

// Movements devuelve la vista repositorio del historial (fuera de transacción).
func (s *Store) Movements() repository.MovementRepository { return &storeMovementRepo{store: s} }

// ── Estado transaccional ─────────────────────────────────────────────────────

type txState struct {
	materials map[string]*entity.Material
	projects  map[string]*entity.Project
	movements []*entity.MovementTransaction
}

type materialRepo struct{ state *txState }

func (r *materialRepo) Create(m *entity.Material) error {
	r.state.materials[m.ID] = cloneMaterial(m)
	return nil
}

func (r *materialRepo) GetByID(id string) (*entity.Material, error) {
	if m, ok := r.state.materials[id]; ok {
		return cloneMaterial(m), nil
	}
	return nil, nil
}

// GetForUpdate equivale a GetByID: el lock global del Store ya serializa.
func (r *materialRepo) GetForUpdate(id string) (*entity.Material, error) {
	return r.GetByID(id)
}

func (r *materialRepo) Update(m *entity.Material) error {
	r.state.materials[m.ID] = cloneMaterial(m)
	return nil
}

func (r *materialRepo) List() ([]*entity.Material, error) {
	return listMaterials(r.state.materials), nil
}

func (r *materialRepo) Delete(id string) error {
	delete(r.state.materials, id)
	return nil
}

type projectRepo struct{ state *txState }

func (r *projectRepo) Create(p *entity.Project) error {
	r.state.projects[p.ID] = cloneProject(p)
	return nil
}

func (r *projectRepo) GetByID(id string) (*entity.Project, error) {
	if p, ok := r.state.projects[id]; ok {
		return cloneProject(p), nil
	}
	return nil, nil
}

func (r *projectRepo) GetForUpdate(id string) (*entity.Project, error) {
	return r.GetByID(id)
}

func (r *projectRepo) Update(p *entity.Project) error {
	r.state.projects[p.ID] = cloneProject(p)
	return nil
}

func (r *projectRepo) List(status string) ([]*entity.Project, error) {
	return listProjects(r.state.projects, status), nil
}

type movementRepo struct{ state *txState }

func (r *movementRepo) Append(tx *entity.MovementTransaction) error {
	r.state.movements = append(r.state.movements, cloneMovement(tx))
	return nil
}

func (r *movementRepo) List(limit, offset int) ([]*entity.MovementTransaction, error) {
	return listMovements(r.state.movements, limit, offset), nil
}

// ── Vistas fuera de transacción (lecturas con RLock, escrituras con Lock) ───

type storeMaterialRepo struct{ store *Store }

func (r *storeMaterialRepo) Create(m *entity.Material) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.materials[m.ID] = cloneMaterial(m)
	return nil
}

func (r *storeMaterialRepo) GetByID(id string) (*entity.Material, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if m, ok := r.store.materials[id]; ok {
		return cloneMaterial(m), nil
	}
	return nil, nil
}

func (r *storeMaterialRepo) GetForUpdate(id string) (*entity.Material, error) {
	return r.GetByID(id)
}

func (r *storeMaterialRepo) Update(m *entity.Material) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.materials[m.ID] = cloneMaterial(m)
	return nil
}

func (r *storeMaterialRepo) List() ([]*entity.Material, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return listMaterials(r.store.materials), nil
}

func (r *storeMaterialRepo) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.materials, id)
	return nil
}

type storeProjectRepo struct{ store *Store }

func (r *storeProjectRepo) Create(p *entity.Project) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.projects[p.ID] = cloneProject(p)
	return nil
}

func (r *storeProjectRepo) GetByID(id string) (*entity.Project, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if p, ok := r.store.projects[id]; ok {
		return cloneProject(p), nil
	}
	return nil, nil
}

func (r *storeProjectRepo) GetForUpdate(id string) (*entity.Project, error) {
	return r.GetByID(id)
}

func (r *storeProjectRepo) Update(p *entity.Project) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.projects[p.ID] = cloneProject(p)
	return nil
}

func (r *storeProjectRepo) List(status string) ([]*entity.Project, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return listProjects(r.store.projects, status), nil
}

type storeMovementRepo struct{ store *Store }

func (r *storeMovementRepo) Append(tx *entity.MovementTransaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.movements = append(r.store.movements, cloneMovement(tx))
	return nil
}

func (r *storeMovementRepo) List(limit, offset int) ([]*entity.MovementTransaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return listMovements(r.store.movements, limit, offset), nil
}

// ── Clonado y listados ───────────────────────────────────────────────────────

func cloneMaterial(m *entity.Material) *entity.Material {
	c := *m
	return &c
}

func cloneMaterials(in map[string]*entity.Material) map[string]*entity.Material {
	out := make(map[string]*entity.Material, len(in))
	for id, m := range in {
		out[id] = cloneMaterial(m)
	}
	return out
}

func cloneProject(p *entity.Project) *entity.Project {
	c := *p
	c.Materials = append([]entity.ProjectMaterial(nil), p.Materials...)
	if p.CompletionDate != nil {
		d := *p.CompletionDate
		c.CompletionDate = &d
	}
	return &c
}

func cloneProjects(in map[string]*entity.Project) map[string]*entity.Project {
	out := make(map[string]*entity.Project, len(in))
	for id, p := range in {
		out[id] = cloneProject(p)
	}
	return out
}

func cloneMovement(tx *entity.MovementTransaction) *entity.MovementTransaction {
	c := *tx
	c.Items = append([]entity.MovementItem(nil), tx.Items...)
	return &c
}

func listMaterials(in map[string]*entity.Material) []*entity.Material {
	out := make([]*entity.Material, 0, len(in))
	for _, m := range in {
		out = append(out, cloneMaterial(m))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func listProjects(in map[string]*entity.Project, status string) []*entity.Project {
	out := make([]*entity.Project, 0, len(in))
	for _, p := range in {
		if status != "" && p.Status != status {
			continue
		}
		out = append(out, cloneProject(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func listMovements(in []*entity.MovementTransaction, limit, offset int) []*entity.MovementTransaction {
	// Más reciente primero.
	out := make([]*entity.MovementTransaction, 0, len(in))
	for i := len(in) - 1; i >= 0; i-- {
		out = append(out, cloneMovement(in[i]))
	}
	if offset >= len(out) {
		return nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}
