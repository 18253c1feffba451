package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"animal-adoption/internal/domain/animals"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

var _ animals.Repository = (*AnimalsRepo)(nil)

const animalColumns = `
	id, identification_code,
	name, type, size, gender, birth_date,
	vaccinated, castrated, dewormed, microchip,
	publication_date, additional_information, status,
	created_at, updated_at`

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) (animals.Animal, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO animals (
			identification_code,
			name, type, size, gender, birth_date,
			vaccinated, castrated, dewormed, microchip,
			publication_date, additional_information, status,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		RETURNING id
	`,
		a.IdentificationCode,
		a.Name,
		string(a.Type),
		string(a.Size),
		string(a.Gender),
		a.BirthDate,
		a.Vaccinated,
		a.Castrated,
		a.Dewormed,
		a.Microchip,
		toNullDate(a.PublicationDate),
		a.AdditionalInformation,
		string(a.Status),
		a.CreatedAt,
		a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		return animals.Animal{}, err
	}
	return a, nil
}

func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animals
		SET
			identification_code = $2,
			name = $3,
			type = $4,
			size = $5,
			gender = $6,
			birth_date = $7,
			vaccinated = $8,
			castrated = $9,
			dewormed = $10,
			microchip = $11,
			publication_date = $12,
			additional_information = $13,
			status = $14,
			updated_at = $15
		WHERE id = $1
	`,
		a.ID,
		a.IdentificationCode,
		a.Name,
		string(a.Type),
		string(a.Size),
		string(a.Gender),
		a.BirthDate,
		a.Vaccinated,
		a.Castrated,
		a.Dewormed,
		a.Microchip,
		toNullDate(a.PublicationDate),
		a.AdditionalInformation,
		string(a.Status),
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animals.ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM animals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animals.ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id int64) (animals.Animal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+animalColumns+` FROM animals WHERE id = $1`, id)

	a, err := scanAnimal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}

	imgs, err := r.imagesFor(ctx, []int64{a.ID})
	if err != nil {
		return animals.Animal{}, err
	}
	a.Images = imgs[a.ID]
	return a, nil
}

func (r *AnimalsRepo) List(ctx context.Context) ([]animals.Animal, error) {
	return r.query(ctx, `SELECT `+animalColumns+` FROM animals ORDER BY id ASC`)
}

func (r *AnimalsRepo) Search(ctx context.Context, q animals.Query) ([]animals.Animal, int, error) {
	where, args := searchWhere(q)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM animals`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count animals: %w", err)
	}

	args = append(args, q.PerPage, q.Offset())
	stmt := fmt.Sprintf(`SELECT %s FROM animals%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		animalColumns, where, orderBy(q.Sort), len(args)-1, len(args))

	items, err := r.query(ctx, stmt, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *AnimalsRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM animals`).Scan(&n)
	return n, err
}

func (r *AnimalsRepo) AddImages(ctx context.Context, animalID int64, imgs []animals.Image) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var start int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM animal_images WHERE animal_id = $1`, animalID,
	).Scan(&start); err != nil {
		return err
	}

	if err := insertImages(ctx, tx, animalID, imgs, start); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *AnimalsRepo) ReplaceImages(ctx context.Context, animalID int64, imgs []animals.Image) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM animal_images WHERE animal_id = $1`, animalID); err != nil {
		return err
	}
	if err := insertImages(ctx, tx, animalID, imgs, 0); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *AnimalsRepo) CountRelated(ctx context.Context, animalID int64) (animals.Related, error) {
	var rel animals.Related
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM animal_images WHERE animal_id = $1),
			(SELECT COUNT(*) FROM testimonies   WHERE animal_id = $1),
			(SELECT COUNT(*) FROM adoptions     WHERE animal_id = $1)
	`, animalID).Scan(&rel.Images, &rel.Testimonies, &rel.Adoptions)
	return rel, err
}

func (r *AnimalsRepo) query(ctx context.Context, stmt string, args ...any) ([]animals.Animal, error) {
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
		ids = append(ids, a.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	imgs, err := r.imagesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Images = imgs[out[i].ID]
	}
	return out, nil
}

// imagesFor trae las imágenes de varios animales en una sola query.
func (r *AnimalsRepo) imagesFor(ctx context.Context, ids []int64) (map[int64][]animals.Image, error) {
	out := make(map[int64][]animals.Image, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT animal_id, id, image_url, public_id
		FROM animal_images
		WHERE animal_id = ANY($1)
		ORDER BY animal_id, position
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var animalID int64
		var img animals.Image
		if err := rows.Scan(&animalID, &img.ID, &img.URL, &img.PublicID); err != nil {
			return nil, err
		}
		out[animalID] = append(out[animalID], img)
	}
	return out, rows.Err()
}

func insertImages(ctx context.Context, tx *sql.Tx, animalID int64, imgs []animals.Image, start int) error {
	for i, img := range imgs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO animal_images (id, animal_id, image_url, public_id, position)
			VALUES ($1,$2,$3,$4,$5)
		`, img.ID, animalID, img.URL, img.PublicID, start+i); err != nil {
			return err
		}
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnimal(s scanner) (animals.Animal, error) {
	var (
		a                        animals.Animal
		typ, size, gender, state string
		pub                      sql.NullTime
	)
	if err := s.Scan(
		&a.ID,
		&a.IdentificationCode,
		&a.Name,
		&typ,
		&size,
		&gender,
		&a.BirthDate,
		&a.Vaccinated,
		&a.Castrated,
		&a.Dewormed,
		&a.Microchip,
		&pub,
		&a.AdditionalInformation,
		&state,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return animals.Animal{}, err
	}

	a.Type = animals.Type(typ)
	a.Size = animals.Size(size)
	a.Gender = animals.Gender(gender)
	a.Status = animals.Status(state)
	if pub.Valid {
		t := pub.Time
		a.PublicationDate = &t
	}
	return a, nil
}

// searchWhere arma el WHERE con placeholders numerados; los valores nunca se interpolan.
func searchWhere(q animals.Query) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(col, val string) {
		if val == "" {
			return
		}
		args = append(args, val)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	add("type", string(q.Type))
	add("gender", string(q.Gender))
	add("size", string(q.Size))
	add("status", string(q.Status))

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func orderBy(s animals.Sort) string {
	switch s {
	case animals.SortOldest:
		return "COALESCE(publication_date::timestamptz, created_at) ASC, id ASC"
	case animals.SortNameAsc:
		return "LOWER(name) ASC, id ASC"
	case animals.SortNameDesc:
		return "LOWER(name) DESC, id ASC"
	default:
		return "COALESCE(publication_date::timestamptz, created_at) DESC, id DESC"
	}
}

// publication_date es DATE, lo pasamos como NullTime para simplificar
func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
