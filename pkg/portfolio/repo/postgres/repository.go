// Package postgres implements the repository against PostgreSQL using pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/webfolio/portfolio-server/pkg/portfolio"
)

// DBTX is satisfied by both a pgx connection pool and a pgx transaction, so
// the same query methods serve plain calls and calls inside InTx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements portfolio.Repository using PostgreSQL.
type Repository struct {
	db   DBTX
	pool *pgxpool.Pool
}

// New creates a repository over an existing connection or transaction. A
// repository built this way cannot open nested transactions; InTx runs its
// function directly.
func New(db DBTX) *Repository {
	return &Repository{db: db}
}

// NewWithPool creates a repository backed by a connection pool.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool, pool: pool}
}

// InTx runs fn inside a single database transaction. When the repository was
// built from a bare DBTX (already inside a transaction), fn runs against the
// current handle instead of opening a nested one.
func (r *Repository) InTx(ctx context.Context, fn func(portfolio.Repository) error) error {
	if r.pool == nil {
		return fn(r)
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return mapError("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&Repository{db: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return mapError("commit tx", err)
	}
	return nil
}

// mapError translates driver errors into the domain sentinels so callers can
// classify with errors.Is without importing pgx.
func mapError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s: %w", op, portfolio.ErrConflict)
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return fmt.Errorf("%s: %w", op, portfolio.ErrConflict)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s: %w", op, portfolio.ErrNotFound)
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, portfolio.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Ordering operations. The OrderedEntity constants double as table names;
// every child table scopes its order sequence by section_id.

func orderTable(entity portfolio.OrderedEntity) (string, error) {
	if !entity.IsValid() {
		return "", fmt.Errorf("unknown entity kind %q: %w", entity, portfolio.ErrInvalidInput)
	}
	return string(entity), nil
}

func (r *Repository) MaxOrder(ctx context.Context, scope portfolio.OrderScope) (int, error) {
	table, err := orderTable(scope.Entity)
	if err != nil {
		return 0, err
	}

	var query string
	var args []interface{}
	if scope.Entity == portfolio.EntitySections {
		query = fmt.Sprintf(`SELECT COALESCE(MAX(sort_order), -1) FROM %s`, table)
	} else {
		query = fmt.Sprintf(`SELECT COALESCE(MAX(sort_order), -1) FROM %s WHERE section_id = $1`, table)
		args = append(args, scope.ParentID)
	}

	var maxOrder int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&maxOrder); err != nil {
		return 0, mapError("max order", err)
	}
	return maxOrder, nil
}

func (r *Repository) SetOrder(ctx context.Context, scope portfolio.OrderScope, id uuid.UUID, order int) (bool, error) {
	table, err := orderTable(scope.Entity)
	if err != nil {
		return false, err
	}

	var tag pgconn.CommandTag
	if scope.Entity == portfolio.EntitySections {
		query := fmt.Sprintf(`UPDATE %s SET sort_order = $2 WHERE id = $1`, table)
		tag, err = r.db.Exec(ctx, query, id, order)
	} else {
		query := fmt.Sprintf(`UPDATE %s SET sort_order = $2 WHERE id = $1 AND section_id = $3`, table)
		tag, err = r.db.Exec(ctx, query, id, order, scope.ParentID)
	}
	if err != nil {
		return false, mapError("set order", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) Exists(ctx context.Context, entity portfolio.OrderedEntity, id uuid.UUID) (bool, error) {
	table, err := orderTable(entity)
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, table)
	var exists bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, mapError("exists", err)
	}
	return exists, nil
}

// Sections

func (r *Repository) CreateSection(ctx context.Context, s *portfolio.Section) error {
	query := `
		INSERT INTO sections (id, title, slug, type, sort_order, visible, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		s.ID, s.Title, s.Slug, s.Type, s.Order, s.Visible, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return mapError("create section", err)
	}
	return nil
}

func (r *Repository) GetSection(ctx context.Context, id uuid.UUID) (*portfolio.Section, error) {
	query := `
		SELECT id, title, slug, type, sort_order, visible, created_at, updated_at
		FROM sections WHERE id = $1`

	var s portfolio.Section
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Title, &s.Slug, &s.Type, &s.Order, &s.Visible, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, mapError("get section", err)
	}
	return &s, nil
}

func (r *Repository) GetSectionBySlug(ctx context.Context, slug string) (*portfolio.Section, error) {
	query := `
		SELECT id, title, slug, type, sort_order, visible, created_at, updated_at
		FROM sections WHERE slug = $1`

	var s portfolio.Section
	err := r.db.QueryRow(ctx, query, slug).Scan(
		&s.ID, &s.Title, &s.Slug, &s.Type, &s.Order, &s.Visible, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, mapError("get section by slug", err)
	}
	return &s, nil
}

func (r *Repository) ListSections(ctx context.Context) ([]*portfolio.Section, error) {
	query := `
		SELECT id, title, slug, type, sort_order, visible, created_at, updated_at
		FROM sections ORDER BY sort_order, created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, mapError("list sections", err)
	}
	defer rows.Close()

	var out []*portfolio.Section
	for rows.Next() {
		var s portfolio.Section
		if err := rows.Scan(&s.ID, &s.Title, &s.Slug, &s.Type, &s.Order, &s.Visible, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, mapError("scan section", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateSection(ctx context.Context, s *portfolio.Section) error {
	query := `
		UPDATE sections SET title = $2, slug = $3, type = $4, sort_order = $5,
			visible = $6, updated_at = $7
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		s.ID, s.Title, s.Slug, s.Type, s.Order, s.Visible, s.UpdatedAt)
	if err != nil {
		return mapError("update section", err)
	}
	if tag.RowsAffected() == 0 {
		return portfolio.ErrNotFound
	}
	return nil
}

// DeleteSection relies on ON DELETE CASCADE for child tables; item images
// carry no foreign key (they reference three owner kinds) so their cleanup
// is explicit.
func (r *Repository) DeleteSection(ctx context.Context, id uuid.UUID) error {
	cleanup := `
		DELETE FROM item_images WHERE (owner_kind = 'skills' AND owner_id = $1)
			OR (owner_kind = 'experience' AND owner_id IN (SELECT id FROM experience_items WHERE section_id = $1))
			OR (owner_kind = 'education' AND owner_id IN (SELECT id FROM education_items WHERE section_id = $1))`
	if _, err := r.db.Exec(ctx, cleanup, id); err != nil {
		return mapError("delete section images", err)
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM sections WHERE id = $1`, id)
	if err != nil {
		return mapError("delete section", err)
	}
	if tag.RowsAffected() == 0 {
		return portfolio.ErrNotFound
	}
	return nil
}

// Text blocks

func (r *Repository) CreateTextBlock(ctx context.Context, b *portfolio.TextBlock) error {
	query := `
		INSERT INTO text_blocks (id, section_id, heading, body, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		b.ID, b.SectionID, b.Heading, b.Body, b.Order, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return mapError("create text block", err)
	}
	return nil
}

func (r *Repository) GetTextBlock(ctx context.Context, id uuid.UUID) (*portfolio.TextBlock, error) {
	query := `
		SELECT id, section_id, heading, body, sort_order, created_at, updated_at
		FROM text_blocks WHERE id = $1`

	var b portfolio.TextBlock
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.SectionID, &b.Heading, &b.Body, &b.Order, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, mapError("get text block", err)
	}
	return &b, nil
}

func (r *Repository) ListTextBlocks(ctx context.Context, sectionID uuid.UUID) ([]*portfolio.TextBlock, error) {
	query := `
		SELECT id, section_id, heading, body, sort_order, created_at, updated_at
		FROM text_blocks WHERE section_id = $1 ORDER BY sort_order, created_at`

	rows, err := r.db.Query(ctx, query, sectionID)
	if err != nil {
		return nil, mapError("list text blocks", err)
	}
	defer rows.Close()

	var out []*portfolio.TextBlock
	for rows.Next() {
		var b portfolio.TextBlock
		if err := rows.Scan(&b.ID, &b.SectionID, &b.Heading, &b.Body, &b.Order, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, mapError("scan text block", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateTextBlock(ctx context.Context, b *portfolio.TextBlock) error {
	query := `
		UPDATE text_blocks SET heading = $2, body = $3, sort_order = $4, updated_at = $5
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, b.ID, b.Heading, b.Body, b.Order, b.UpdatedAt)
	if err != nil {
		return mapError("update text block", err)
	}
	if tag.RowsAffected() == 0 {
		return portfolio.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteTextBlock(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, "text_blocks", id)
}

// Image blocks

func (r *Repository) CreateImageBlock(ctx context.Context, b *portfolio.ImageBlock) error {
	query := `
		INSERT INTO image_blocks (id, section_id, src, image_public_id, alt, caption, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		b.ID, b.SectionID, b.Src, b.ImagePublicID, b.Alt, b.Caption, b.Order, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return mapError("create image block", err)
	}
	return nil
}

func (r *Repository) GetImageBlock(ctx context.Context, id uuid.UUID) (*portfolio.ImageBlock, error) {
	query := `
		SELECT id, section_id, src, image_public_id, alt, caption, sort_order, created_at, updated_at
		FROM image_blocks WHERE id = $1`

	var b portfolio.ImageBlock
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.SectionID, &b.Src, &b.ImagePublicID, &b.Alt, &b.Caption, &b.Order, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, mapError("get image block", err)
	}
	return &b, nil
}

func (r *Repository) ListImageBlocks(ctx context.Context, sectionID uuid.UUID) ([]*portfolio.ImageBlock, error) {
	query := `
		SELECT id, section_id, src, image_public_id, alt, caption, sort_order, created_at, updated_at
		FROM image_blocks WHERE section_id = $1 ORDER BY sort_order, created_at`

	rows, err := r.db.Query(ctx, query, sectionID)
	if err != nil {
		return nil, mapError("list image blocks", err)
	}
	defer rows.Close()

	var out []*portfolio.ImageBlock
	for rows.Next() {
		var b portfolio.ImageBlock
		if err := rows.Scan(&b.ID, &b.SectionID, &b.Src, &b.ImagePublicID, &b.Alt, &b.Caption, &b.Order, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, mapError("scan image block", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateImageBlock(ctx context.Context, b *portfolio.ImageBlock) error {
	query := `
		UPDATE image_blocks SET src = $2, image_public_id = $3, alt = $4, caption = $5,
			sort_order = $6, updated_at = $7
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		b.ID, b.Src, b.ImagePublicID, b.Alt, b.Caption, b.Order, b.UpdatedAt)
	if err != nil {
		return mapError("update image block", err)
	}
	if tag.RowsAffected() == 0 {
		return portfolio.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteImageBlock(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, "image_blocks", id)
}

// Content blocks

func (r *Repository) CreateContentBlock(ctx context.Context, b *portfolio.ContentBlock) error {
	query := `
		INSERT INTO content_blocks (id, section_id, kind, heading, body, src, image_public_id, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		b.ID, b.SectionID, b.Kind, b.Heading, b.Body, b.Src, b.ImagePublicID, b.Order, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return mapError("create content block", err)
	}
	return nil
}

func (r *Repository) GetContentBlock(ctx context.Context, id uuid.UUID) (*portfolio.ContentBlock, error) {
	query := `
		SELECT id, section_id, kind, heading, body, src, image_public_id, sort_order, created_at, updated_at
		FROM content_blocks WHERE id = $1`

	var b portfolio.ContentBlock
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.SectionID, &b.Kind, &b.Heading, &b.Body, &b.Src, &b.ImagePublicID, &b.Order, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, mapError("get content block", err)
	}
	return &b, nil
}

func (r *Repository) ListContentBlocks(ctx context.Context, sectionID uuid.UUID) ([]*portfolio.ContentBlock, error) {
	query := `
		SELECT id, section_id, kind, heading, body, src, image_public_id, sort_order, created_at, updated_at
		FROM content_blocks WHERE section_id = $1 ORDER BY sort_order, created_at`

	rows, err := r.db.Query(ctx, query, sectionID)
	if err != nil {
		return nil, mapError("list content blocks", err)
	}
	defer rows.Close()

	var out []*portfolio.ContentBlock
	for rows.Next() {
		var b portfolio.ContentBlock
		if err := rows.Scan(&b.ID, &b.SectionID, &b.Kind, &b.Heading, &b.Body, &b.Src, &b.ImagePublicID, &b.Order, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, mapError("scan content block", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateContentBlock(ctx context.Context, b *portfolio.ContentBlock) error {
	query := `
		UPDATE content_blocks SET kind = $2, heading = $3, body = $4, src = $5,
			image_public_id = $6, sort_order = $7, updated_at = $8
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		b.ID, b.Kind, b.Heading, b.Body, b.Src, b.ImagePublicID, b.Order, b.UpdatedAt)
	if err != nil {
		return mapError("update content block", err)
	}
	if tag.RowsAffected() == 0 {
		return portfolio.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteContentBlock(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, "content_blocks", id)
}

// Projects

func (r *Repository) CreateProject(ctx context.Context, p *portfolio.ProjectItem) error {
	query := `
		INSERT INTO projects (id, section_id, title, description, repo_url, live_url,
			image_src, image_public_id, category_ids, featured, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.Exec(ctx, query,
		p.ID, p.SectionID, p.Title, p.Description, p.RepoURL, p.LiveURL,
		p.ImageSrc, p.ImagePublicID, p.CategoryIDs, p.Featured, p.Order, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return mapError("create project", err)
	}
	return nil
}

func (r *Repository) GetProject(ctx context.Context, id uuid.UUID) (*portfolio.ProjectItem, error) {
	query := `
		SELECT id, section_id, title, description, repo_url, live_url,
			image_src, image_public_id, category_ids, featured, sort_order, created_at, updated_at
		FROM projects WHERE id = $1`

	var p portfolio.ProjectItem
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.SectionID, &p.Title, &p.Description, &p.RepoURL, &p.LiveURL,
		&p.ImageSrc, &p.ImagePublicID, &p.CategoryIDs, &p.Featured, &p.Order, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapError("get project", err)
	}
	if p.CategoryIDs == nil {
		p.CategoryIDs = []uuid.UUID{}
	}
	return &p, nil
}

func (r *Repository) ListProjects(ctx context.Context, sectionID uuid.UUID) ([]*portfolio.ProjectItem, error) {
	query := `
		SELECT id, section_id, title, description, repo_url, live_url,
			image_src, image_public_id, category_ids, featured, sort_order, created_at, updated_at
		FROM projects WHERE section_id = $1 ORDER BY sort_order, created_at`

	return r.queryProjects(ctx, query, sectionID)
}

func (r *Repository) ListProjectsByCategory(ctx context.Context, categoryID uuid.UUID) ([]*portfolio.ProjectItem, error) {
	query := `
		SELECT id, section_id, title, description, repo_url, live_url,
			image_src, image_public_id, category_ids, featured, sort_order, created_at, updated_at
		FROM projects WHERE $1 = ANY(category_ids) ORDER BY sort_order, created_at`

	return r.queryProjects(ctx, query, categoryID)
}

func (r *Repository) queryProjects(ctx context.Context, query string, args ...interface{}) ([]*portfolio.ProjectItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError("list projects", err)
	}
	defer rows.Close()

	var out []*portfolio.ProjectItem
	for rows.Next() {
		var p portfolio.ProjectItem
		if err := rows.Scan(&p.ID, &p.SectionID, &p.Title, &p.Description, &p.RepoURL, &p.LiveURL,
			&p.ImageSrc, &p.ImagePublicID, &p.CategoryIDs, &p.Featured, &p.Order, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, mapError("scan project", err)
		}
		if p.CategoryIDs == nil {
			p.CategoryIDs = []uuid.UUID{}
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateProject(ctx context.Context, p *portfolio.ProjectItem) error {
	query := `
		UPDATE projects SET title = $2, description = $3, repo_url = $4, live_url = $5,
			image_src = $6, image_public_id = $7, category_ids = $8, featured = $9,
			sort_order = $10, updated_at = $11
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		p.ID, p.Title, p.Description, p.RepoURL, p.LiveURL,
		p.ImageSrc, p.ImagePublicID, p.CategoryIDs, p.Featured, p.Order, p.UpdatedAt)
	if err != nil {
		return mapError("update project", err)
	}
	if tag.RowsAffected() == 0 {
		return portfolio.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteProject(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, "projects", id)
}

// Categories

func (r *Repository) CreateCategory(ctx context.Context, c *portfolio.Category) error {
	query := `
		INSERT INTO categories (id, name, slug, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query, c.ID, c.Name, c.Slug, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return mapError("create category", err)
	}
	return nil
}

func (r *Repository) GetCategory(ctx context.Context, id uuid.UUID) (*portfolio.Category, error) {
	query := `SELECT id, name, slug, created_at, updated_at FROM categories WHERE id = $1`

	var c portfolio.Category
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, mapError("get category", err)
	}
	return &c, nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]*portfolio.Category, error) {
	query := `SELECT id, name, slug, created_at, updated_at FROM categories ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, mapError("list categories", err)
	}
	defer rows.Close()

	var out []*portfolio.Category
	for rows.Next() {
		var c portfolio.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, mapError("scan category", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateCategory(ctx context.Context, c *portfolio.Category) error {
	query := `UPDATE categories SET name = $2, slug = $3, updated_at = $4 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, c.ID, c.Name, c.Slug, c.UpdatedAt)
	if err != nil {
		return mapError("update category", err)
	}
	if tag.RowsAffected() == 0 {
		return portfolio.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, "categories", id)
}

// Experience

func (r *Repository) CreateExperience(ctx context.Context, e *portfolio.ExperienceItem) error {
	query := `
		INSERT INTO experience_items (id, section_id, role, company, location,
			start_date, end_date, summary, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, query,
		e.ID, e.SectionID, e.Role, e.Company, e.Location,
		e.StartDate, e.EndDate, e.Summary, e.Order, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return mapError("create experience", err)
	}
	return nil
}

func (r *Repository) GetExperience(ctx context.Context, id uuid.UUID) (*portfolio.ExperienceItem, error) {
	query := `
		SELECT id, section_id, role, company, location, start_date, end_date, summary,
			sort_order, created_at, updated_at
		FROM experience_items WHERE id = $1`

	var e portfolio.ExperienceItem
	err := r.db.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.SectionID, &e.Role, &e.Company, &e.Location, &e.StartDate, &e.EndDate,
		&e.Summary, &e.Order, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, mapError("get experience", err)
	}
	return &e, nil
}

func (r *Repository) ListExperience(ctx context.Context, sectionID uuid.UUID) ([]*portfolio.ExperienceItem, error) {
	query := `
		SELECT id, section_id, role, company, location, start_date, end_date, summary,
			sort_order, created_at, updated_at
		FROM experience_items WHERE section_id = $1 ORDER BY sort_order, created_at`

	rows, err := r.db.Query(ctx, query, sectionID)
	if err != nil {
		return nil, mapError("list experience", err)
	}
	defer rows.Close()

	var out []*portfolio.ExperienceItem
	for rows.Next() {
		var e portfolio.ExperienceItem
		if err := rows.Scan(&e.ID, &e.SectionID, &e.Role, &e.Company, &e.Location, &e.StartDate,
			&e.EndDate, &e.Summary, &e.Order, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, mapError("scan experience", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateExperience(ctx context.Context, e *portfolio.ExperienceItem) error {
	query := `
		UPDATE experience_items SET role = $2, company = $3, location = $4, start_date = $5,
			end_date = $6, summary = $7, sort_order = $8, updated_at = $9
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		e.ID, e.Role, e.Company, e.Location, e.StartDate, e.EndDate, e.Summary, e.Order, e.UpdatedAt)
	if err != nil {
		return mapError("update experience", err)
	}
	if tag.RowsAffected() == 0 {
		return portfolio.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteExperience(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx,
		`DELETE FROM item_images WHERE owner_kind = 'experience' AND owner_id = $1`, id); err != nil {
		return mapError("delete experience images", err)
	}
	return r.deleteByID(ctx, "experience_items", id)
}

// Education

func (r *Repository) CreateEducation(ctx context.Context, e *portfolio.EducationItem) error {
	query := `
		INSERT INTO education_items (id, section_id, school, degree, field,
			start_year, end_year, summary, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, query,
		e.ID, e.SectionID, e.School, e.Degree, e.Field,
		e.StartYear, e.EndYear, e.Summary, e.Order, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return mapError("create education", err)
	}
	return nil
}

func (r *Repository) GetEducation(ctx context.Context, id uuid.UUID) (*portfolio.EducationItem, error) {
	query := `
		SELECT id, section_id, school, degree, field, start_year, end_year, summary,
			sort_order, created_at, updated_at
		FROM education_items WHERE id = $1`

	var e portfolio.EducationItem
	err := r.db.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.SectionID, &e.School, &e.Degree, &e.Field, &e.StartYear, &e.EndYear,
		&e.Summary, &e.Order, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, mapError("get education", err)
	}
	return &e, nil
}

func (r *Repository) ListEducation(ctx context.Context, sectionID uuid.UUID) ([]*portfolio.EducationItem, error) {
	query := `
		SELECT id, section_id, school, degree, field, start_year, end_year, summary,
			sort_order, created_at, updated_at
		FROM education_items WHERE section_id = $1 ORDER BY sort_order, created_at`

	rows, err := r.db.Query(ctx, query, sectionID)
	if err != nil {
		return nil, mapError("list education", err)
	}
	defer rows.Close()

	var out []*portfolio.EducationItem
	for rows.Next() {
		var e portfolio.EducationItem
		if err := rows.Scan(&e.ID, &e.SectionID, &e.School, &e.Degree, &e.Field, &e.StartYear,
			&e.EndYear, &e.Summary, &e.Order, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, mapError("scan education", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateEducation(ctx context.Context, e *portfolio.EducationItem) error {
	query := `
		UPDATE education_items SET school = $2, degree = $3, field = $4, start_year = $5,
			end_year = $6, summary = $7, sort_order = $8, updated_at = $9
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		e.ID, e.School, e.Degree, e.Field, e.StartYear, e.EndYear, e.Summary, e.Order, e.UpdatedAt)
	if err != nil {
		return mapError("update education", err)
	}
	if tag.RowsAffected() == 0 {
		return portfolio.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteEducation(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx,
		`DELETE FROM item_images WHERE owner_kind = 'education' AND owner_id = $1`, id); err != nil {
		return mapError("delete education images", err)
	}
	return r.deleteByID(ctx, "education_items", id)
}

// Skills

func (r *Repository) CreateSkill(ctx context.Context, s *portfolio.SkillItem) error {
	query := `
		INSERT INTO skill_items (id, section_id, name, level, icon_src, icon_public_id,
			sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		s.ID, s.SectionID, s.Name, s.Level, s.IconSrc, s.IconPublicID, s.Order, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return mapError("create skill", err)
	}
	return nil
}

func (r *Repository) GetSkill(ctx context.Context, id uuid.UUID) (*portfolio.SkillItem, error) {
	query := `
		SELECT id, section_id, name, level, icon_src, icon_public_id, sort_order, created_at, updated_at
		FROM skill_items WHERE id = $1`

	var s portfolio.SkillItem
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.SectionID, &s.Name, &s.Level, &s.IconSrc, &s.IconPublicID, &s.Order, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, mapError("get skill", err)
	}
	return &s, nil
}

func (r *Repository) ListSkills(ctx context.Context, sectionID uuid.UUID) ([]*portfolio.SkillItem, error) {
	query := `
		SELECT id, section_id, name, level, icon_src, icon_public_id, sort_order, created_at, updated_at
		FROM skill_items WHERE section_id = $1 ORDER BY sort_order, created_at`

	rows, err := r.db.Query(ctx, query, sectionID)
	if err != nil {
		return nil, mapError("list skills", err)
	}
	defer rows.Close()

	var out []*portfolio.SkillItem
	for rows.Next() {
		var s portfolio.SkillItem
		if err := rows.Scan(&s.ID, &s.SectionID, &s.Name, &s.Level, &s.IconSrc, &s.IconPublicID,
			&s.Order, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, mapError("scan skill", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateSkill(ctx context.Context, s *portfolio.SkillItem) error {
	query := `
		UPDATE skill_items SET name = $2, level = $3, icon_src = $4, icon_public_id = $5,
			sort_order = $6, updated_at = $7
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		s.ID, s.Name, s.Level, s.IconSrc, s.IconPublicID, s.Order, s.UpdatedAt)
	if err != nil {
		return mapError("update skill", err)
	}
	if tag.RowsAffected() == 0 {
		return portfolio.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteSkill(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, "skill_items", id)
}

// Testimonials

func (r *Repository) CreateTestimonial(ctx context.Context, t *portfolio.TestimonialItem) error {
	query := `
		INSERT INTO testimonial_items (id, section_id, author, role, quote, avatar_src,
			avatar_public_id, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		t.ID, t.SectionID, t.Author, t.Role, t.Quote, t.AvatarSrc, t.AvatarPublicID,
		t.Order, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return mapError("create testimonial", err)
	}
	return nil
}

func (r *Repository) GetTestimonial(ctx context.Context, id uuid.UUID) (*portfolio.TestimonialItem, error) {
	query := `
		SELECT id, section_id, author, role, quote, avatar_src, avatar_public_id,
			sort_order, created_at, updated_at
		FROM testimonial_items WHERE id = $1`

	var t portfolio.TestimonialItem
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.SectionID, &t.Author, &t.Role, &t.Quote, &t.AvatarSrc, &t.AvatarPublicID,
		&t.Order, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, mapError("get testimonial", err)
	}
	return &t, nil
}

func (r *Repository) ListTestimonials(ctx context.Context, sectionID uuid.UUID) ([]*portfolio.TestimonialItem, error) {
	query := `
		SELECT id, section_id, author, role, quote, avatar_src, avatar_public_id,
			sort_order, created_at, updated_at
		FROM testimonial_items WHERE section_id = $1 ORDER BY sort_order, created_at`

	rows, err := r.db.Query(ctx, query, sectionID)
	if err != nil {
		return nil, mapError("list testimonials", err)
	}
	defer rows.Close()

	var out []*portfolio.TestimonialItem
	for rows.Next() {
		var t portfolio.TestimonialItem
		if err := rows.Scan(&t.ID, &t.SectionID, &t.Author, &t.Role, &t.Quote, &t.AvatarSrc,
			&t.AvatarPublicID, &t.Order, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, mapError("scan testimonial", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateTestimonial(ctx context.Context, t *portfolio.TestimonialItem) error {
	query := `
		UPDATE testimonial_items SET author = $2, role = $3, quote = $4, avatar_src = $5,
			avatar_public_id = $6, sort_order = $7, updated_at = $8
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		t.ID, t.Author, t.Role, t.Quote, t.AvatarSrc, t.AvatarPublicID, t.Order, t.UpdatedAt)
	if err != nil {
		return mapError("update testimonial", err)
	}
	if tag.RowsAffected() == 0 {
		return portfolio.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteTestimonial(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, "testimonial_items", id)
}

// Contact info

func (r *Repository) CreateContactInfo(ctx context.Context, c *portfolio.ContactInfoItem) error {
	query := `
		INSERT INTO contact_info_items (id, section_id, kind, label, value, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		c.ID, c.SectionID, c.Kind, c.Label, c.Value, c.Order, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return mapError("create contact info", err)
	}
	return nil
}

func (r *Repository) GetContactInfo(ctx context.Context, id uuid.UUID) (*portfolio.ContactInfoItem, error) {
	query := `
		SELECT id, section_id, kind, label, value, sort_order, created_at, updated_at
		FROM contact_info_items WHERE id = $1`

	var c portfolio.ContactInfoItem
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.SectionID, &c.Kind, &c.Label, &c.Value, &c.Order, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, mapError("get contact info", err)
	}
	return &c, nil
}

func (r *Repository) ListContactInfo(ctx context.Context, sectionID uuid.UUID) ([]*portfolio.ContactInfoItem, error) {
	query := `
		SELECT id, section_id, kind, label, value, sort_order, created_at, updated_at
		FROM contact_info_items WHERE section_id = $1 ORDER BY sort_order, created_at`

	rows, err := r.db.Query(ctx, query, sectionID)
	if err != nil {
		return nil, mapError("list contact info", err)
	}
	defer rows.Close()

	var out []*portfolio.ContactInfoItem
	for rows.Next() {
		var c portfolio.ContactInfoItem
		if err := rows.Scan(&c.ID, &c.SectionID, &c.Kind, &c.Label, &c.Value, &c.Order,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, mapError("scan contact info", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateContactInfo(ctx context.Context, c *portfolio.ContactInfoItem) error {
	query := `
		UPDATE contact_info_items SET kind = $2, label = $3, value = $4, sort_order = $5, updated_at = $6
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, c.ID, c.Kind, c.Label, c.Value, c.Order, c.UpdatedAt)
	if err != nil {
		return mapError("update contact info", err)
	}
	if tag.RowsAffected() == 0 {
		return portfolio.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteContactInfo(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, "contact_info_items", id)
}

// Hero content

func (r *Repository) GetHeroBySection(ctx context.Context, sectionID uuid.UUID) (*portfolio.HeroContent, error) {
	query := `
		SELECT id, section_id, headline, tagline, portrait_src, portrait_public_id,
			cta_label, cta_url, created_at, updated_at
		FROM hero_contents WHERE section_id = $1`

	var h portfolio.HeroContent
	err := r.db.QueryRow(ctx, query, sectionID).Scan(
		&h.ID, &h.SectionID, &h.Headline, &h.Tagline, &h.PortraitSrc, &h.PortraitPublicID,
		&h.CTALabel, &h.CTAURL, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, mapError("get hero", err)
	}
	return &h, nil
}

func (r *Repository) UpsertHero(ctx context.Context, h *portfolio.HeroContent) error {
	query := `
		INSERT INTO hero_contents (id, section_id, headline, tagline, portrait_src,
			portrait_public_id, cta_label, cta_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (section_id) DO UPDATE SET
			headline = EXCLUDED.headline, tagline = EXCLUDED.tagline,
			portrait_src = EXCLUDED.portrait_src, portrait_public_id = EXCLUDED.portrait_public_id,
			cta_label = EXCLUDED.cta_label, cta_url = EXCLUDED.cta_url,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.Exec(ctx, query,
		h.ID, h.SectionID, h.Headline, h.Tagline, h.PortraitSrc, h.PortraitPublicID,
		h.CTALabel, h.CTAURL, h.CreatedAt, h.UpdatedAt)
	if err != nil {
		return mapError("upsert hero", err)
	}
	return nil
}

func (r *Repository) DeleteHeroBySection(ctx context.Context, sectionID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM hero_contents WHERE section_id = $1`, sectionID); err != nil {
		return mapError("delete hero", err)
	}
	return nil
}

// Item images

func (r *Repository) AddItemImage(ctx context.Context, img *portfolio.ItemImage) error {
	query := `
		INSERT INTO item_images (id, owner_kind, owner_id, src, image_public_id, caption, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		img.ID, img.OwnerKind, img.OwnerID, img.Src, img.ImagePublicID, img.Caption, img.CreatedAt)
	if err != nil {
		return mapError("add item image", err)
	}
	return nil
}

func (r *Repository) GetItemImage(ctx context.Context, id uuid.UUID) (*portfolio.ItemImage, error) {
	query := `
		SELECT id, owner_kind, owner_id, src, image_public_id, caption, created_at
		FROM item_images WHERE id = $1`

	var img portfolio.ItemImage
	err := r.db.QueryRow(ctx, query, id).Scan(
		&img.ID, &img.OwnerKind, &img.OwnerID, &img.Src, &img.ImagePublicID, &img.Caption, &img.CreatedAt)
	if err != nil {
		return nil, mapError("get item image", err)
	}
	return &img, nil
}

func (r *Repository) ListItemImages(ctx context.Context, kind portfolio.ImageOwnerKind, ownerID uuid.UUID) ([]*portfolio.ItemImage, error) {
	query := `
		SELECT id, owner_kind, owner_id, src, image_public_id, caption, created_at
		FROM item_images WHERE owner_kind = $1 AND owner_id = $2 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, kind, ownerID)
	if err != nil {
		return nil, mapError("list item images", err)
	}
	defer rows.Close()

	var out []*portfolio.ItemImage
	for rows.Next() {
		var img portfolio.ItemImage
		if err := rows.Scan(&img.ID, &img.OwnerKind, &img.OwnerID, &img.Src, &img.ImagePublicID,
			&img.Caption, &img.CreatedAt); err != nil {
			return nil, mapError("scan item image", err)
		}
		out = append(out, &img)
	}
	return out, rows.Err()
}

func (r *Repository) DeleteItemImage(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, "item_images", id)
}

func (r *Repository) DeleteItemImagesByOwner(ctx context.Context, kind portfolio.ImageOwnerKind, ownerID uuid.UUID) error {
	if _, err := r.db.Exec(ctx,
		`DELETE FROM item_images WHERE owner_kind = $1 AND owner_id = $2`, kind, ownerID); err != nil {
		return mapError("delete item images", err)
	}
	return nil
}

// Settings

func (r *Repository) GetSetting(ctx context.Context) (*portfolio.Setting, error) {
	query := `
		SELECT id, theme, site_title, show_portrait, resume_url, global_font_family, updated_at
		FROM settings LIMIT 1`

	var s portfolio.Setting
	err := r.db.QueryRow(ctx, query).Scan(
		&s.ID, &s.Theme, &s.SiteTitle, &s.ShowPortrait, &s.ResumeURL, &s.GlobalFontFamily, &s.UpdatedAt)
	if err != nil {
		return nil, mapError("get setting", err)
	}
	return &s, nil
}

func (r *Repository) SaveSetting(ctx context.Context, s *portfolio.Setting) error {
	query := `
		INSERT INTO settings (id, theme, site_title, show_portrait, resume_url, global_font_family, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			theme = EXCLUDED.theme, site_title = EXCLUDED.site_title,
			show_portrait = EXCLUDED.show_portrait, resume_url = EXCLUDED.resume_url,
			global_font_family = EXCLUDED.global_font_family, updated_at = EXCLUDED.updated_at`

	_, err := r.db.Exec(ctx, query,
		s.ID, s.Theme, s.SiteTitle, s.ShowPortrait, s.ResumeURL, s.GlobalFontFamily, s.UpdatedAt)
	if err != nil {
		return mapError("save setting", err)
	}
	return nil
}

// Users

func (r *Repository) CreateUser(ctx context.Context, u *portfolio.User) error {
	query := `
		INSERT INTO users (id, email, name, password_hash, is_admin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query, u.ID, u.Email, u.Name, u.PasswordHash, u.IsAdmin, u.CreatedAt)
	if err != nil {
		return mapError("create user", err)
	}
	return nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*portfolio.User, error) {
	query := `
		SELECT id, email, name, password_hash, is_admin, created_at
		FROM users WHERE lower(email) = lower($1)`

	var u portfolio.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		return nil, mapError("get user by email", err)
	}
	return &u, nil
}

func (r *Repository) UpdateUser(ctx context.Context, u *portfolio.User) error {
	query := `
		UPDATE users SET email = $2, name = $3, password_hash = $4, is_admin = $5
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, u.ID, u.Email, u.Name, u.PasswordHash, u.IsAdmin)
	if err != nil {
		return mapError("update user", err)
	}
	if tag.RowsAffected() == 0 {
		return portfolio.ErrNotFound
	}
	return nil
}

// Contact messages

func (r *Repository) CreateContactMessage(ctx context.Context, m *portfolio.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (id, name, email, body, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query, m.ID, m.Name, m.Email, m.Body, m.CreatedAt)
	if err != nil {
		return mapError("create contact message", err)
	}
	return nil
}

func (r *Repository) ListContactMessages(ctx context.Context) ([]*portfolio.ContactMessage, error) {
	query := `
		SELECT id, name, email, body, created_at
		FROM contact_messages ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, mapError("list contact messages", err)
	}
	defer rows.Close()

	var out []*portfolio.ContactMessage
	for rows.Next() {
		var m portfolio.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Body, &m.CreatedAt); err != nil {
			return nil, mapError("scan contact message", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// deleteByID removes one row from a fixed, code-controlled table name.
func (r *Repository) deleteByID(ctx context.Context, table string, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return mapError("delete "+table, err)
	}
	if tag.RowsAffected() == 0 {
		return portfolio.ErrNotFound
	}
	return nil
}
