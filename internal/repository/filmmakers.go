package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/movienight/movienight/internal/domain"
)

// FilmMakersRepository provides persistence helpers for film makers.
type FilmMakersRepository struct {
	pool *pgxpool.Pool
}

const filmMakerColumns = `
    id,
    first_name,
    last_name,
    about,
    country,
    gender,
    avatar_url,
    birthday,
    is_writer,
    is_producer,
    is_actor,
    is_director,
    created_at,
    updated_at
`

// FilmMakerCreateParams bundles the fields required to create a film maker.
type FilmMakerCreateParams struct {
	FirstName  string
	LastName   string
	About      string
	Country    *string
	Gender     *string
	AvatarURL  *string
	Birthday   *time.Time
	IsWriter   bool
	IsProducer bool
	IsActor    bool
	IsDirector bool
}

// Create inserts a new film maker row and returns the stored entity.
func (r *FilmMakersRepository) Create(ctx context.Context, params FilmMakerCreateParams) (domain.FilmMaker, error) {
	query := fmt.Sprintf(`
        INSERT INTO film_makers (first_name, last_name, about, country, gender, avatar_url,
                                 birthday, is_writer, is_producer, is_actor, is_director)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING %s
    `, filmMakerColumns)

	row := r.pool.QueryRow(ctx, query,
		params.FirstName, params.LastName, params.About, params.Country, params.Gender,
		params.AvatarURL, params.Birthday, params.IsWriter, params.IsProducer,
		params.IsActor, params.IsDirector)
	return scanFilmMaker(row)
}

// GetByID fetches a live film maker by id.
func (r *FilmMakersRepository) GetByID(ctx context.Context, id int64) (domain.FilmMaker, error) {
	query := fmt.Sprintf(`SELECT %s FROM film_makers WHERE id = $1 AND deleted_at IS NULL`, filmMakerColumns)
	return r.getOne(ctx, query, id)
}

// GetActorByID fetches a live film maker flagged as an actor.
func (r *FilmMakersRepository) GetActorByID(ctx context.Context, id int64) (domain.FilmMaker, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM film_makers WHERE id = $1 AND deleted_at IS NULL AND is_actor
    `, filmMakerColumns)
	return r.getOne(ctx, query, id)
}

// GetDirectorByID fetches a live film maker flagged as a director.
func (r *FilmMakersRepository) GetDirectorByID(ctx context.Context, id int64) (domain.FilmMaker, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM film_makers WHERE id = $1 AND deleted_at IS NULL AND is_director
    `, filmMakerColumns)
	return r.getOne(ctx, query, id)
}

// GetProducerByID fetches a live film maker flagged as a producer.
func (r *FilmMakersRepository) GetProducerByID(ctx context.Context, id int64) (domain.FilmMaker, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM film_makers WHERE id = $1 AND deleted_at IS NULL AND is_producer
    `, filmMakerColumns)
	return r.getOne(ctx, query, id)
}

func (r *FilmMakersRepository) getOne(ctx context.Context, query string, id int64) (domain.FilmMaker, error) {
	maker, err := scanFilmMaker(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.FilmMaker{}, ErrNotFound
		}
		return domain.FilmMaker{}, err
	}
	return maker, nil
}

func scanFilmMaker(row pgx.Row) (domain.FilmMaker, error) {
	var maker domain.FilmMaker
	err := row.Scan(
		&maker.ID,
		&maker.FirstName,
		&maker.LastName,
		&maker.About,
		&maker.Country,
		&maker.Gender,
		&maker.AvatarURL,
		&maker.Birthday,
		&maker.IsWriter,
		&maker.IsProducer,
		&maker.IsActor,
		&maker.IsDirector,
		&maker.CreatedAt,
		&maker.UpdatedAt,
	)
	return maker, err
}
