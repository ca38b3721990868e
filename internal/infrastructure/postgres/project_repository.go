package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/stockcontrol-api/internal/domain"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/entity"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/repository"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo implementación de ProjectRepository sobre PostgreSQL.
// Las líneas de presupuesto se guardan como JSONB en la fila del proyecto:
// el presupuesto siempre se lee y escribe como unidad.
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

const projectColumns = `id, description, client, start_date, estimated_days, status, materials, completion_date, created_at, updated_at`

// Create persiste un proyecto nuevo con su presupuesto.
func (r *ProjectRepo) Create(p *entity.Project) error {
	materials, err := json.Marshal(p.Materials)
	if err != nil {
		return fmt.Errorf("marshal materiales: %w", err)
	}
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.q.Exec(context.Background(), query,
		p.ID, p.Description, p.Client, p.StartDate, p.EstimatedDays,
		p.Status, materials, p.CompletionDate, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

// GetByID obtiene un proyecto por ID. Devuelve nil sin error si no existe.
func (r *ProjectRepo) GetByID(id string) (*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene el proyecto bloqueando su fila (SELECT FOR UPDATE).
func (r *ProjectRepo) GetForUpdate(id string) (*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// Update persiste estado, presupuesto y fechas del proyecto.
func (r *ProjectRepo) Update(p *entity.Project) error {
	materials, err := json.Marshal(p.Materials)
	if err != nil {
		return fmt.Errorf("marshal materiales: %w", err)
	}
	query := `
		UPDATE projects
		SET description = $2, client = $3, start_date = $4, estimated_days = $5,
		    status = $6, materials = $7, completion_date = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		p.ID, p.Description, p.Client, p.StartDate, p.EstimatedDays,
		p.Status, materials, p.CompletionDate, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve los proyectos (status vacío = todos), más antiguos primero.
func (r *ProjectRepo) List(status string) ([]*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []*entity.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProjectRepo) scanOne(query string, args ...any) (*entity.Project, error) {
	row := r.q.QueryRow(context.Background(), query, args...)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func scanProject(row pgx.Row) (*entity.Project, error) {
	var (
		p          entity.Project
		materials  []byte
		completion *time.Time
	)
	err := row.Scan(
		&p.ID, &p.Description, &p.Client, &p.StartDate, &p.EstimatedDays,
		&p.Status, &materials, &completion, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan project: %w", err)
	}
	if len(materials) > 0 {
		if err := json.Unmarshal(materials, &p.Materials); err != nil {
			return nil, fmt.Errorf("unmarshal materiales: %w", err)
		}
	}
	p.CompletionDate = completion
	return &p, nil
}
