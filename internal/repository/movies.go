package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/movienight/movienight/internal/apperr"
	"github.com/movienight/movienight/internal/domain"
)

// MoviesRepository provides persistence helpers for movie entities.
type MoviesRepository struct {
	pool *pgxpool.Pool
}

const movieColumns = `
    id,
    title,
    about,
    language,
    country,
    duration,
    trailer_url,
    cover_url,
    score,
    rating,
    award,
    budget,
    release_date,
    director_id,
    producer_id,
    company_id,
    created_at,
    updated_at
`

// MovieCreateParams bundles the fields required to create a movie.
type MovieCreateParams struct {
	Title       string
	About       string
	Language    string
	Country     string
	Duration    int
	TrailerURL  *string
	CoverURL    *string
	Award       *string
	Budget      *int64
	ReleaseDate *time.Time
	DirectorID  *int64
	ProducerID  *int64
	CompanyID   *int64
}

// Create inserts a new movie row and returns the stored entity.
func (r *MoviesRepository) Create(ctx context.Context, params MovieCreateParams) (domain.Movie, error) {
	query := fmt.Sprintf(`
        INSERT INTO movies (title, about, language, country, duration, trailer_url, cover_url,
                            award, budget, release_date, director_id, producer_id, company_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING %s
    `, movieColumns)

	row := r.pool.QueryRow(ctx, query,
		params.Title, params.About, params.Language, params.Country, params.Duration,
		params.TrailerURL, params.CoverURL, params.Award, params.Budget, params.ReleaseDate,
		params.DirectorID, params.ProducerID, params.CompanyID)
	return scanMovie(row)
}

// GetByID fetches a live movie by its identifier, genres included.
func (r *MoviesRepository) GetByID(ctx context.Context, id int64) (domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE id = $1 AND deleted_at IS NULL`, movieColumns)
	movie, err := scanMovie(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Movie{}, ErrNotFound
		}
		return domain.Movie{}, err
	}

	genres, err := r.genres(ctx, id)
	if err != nil {
		return domain.Movie{}, err
	}
	movie.Genres = genres
	return movie, nil
}

// Update persists the full set of mutable movie fields.
func (r *MoviesRepository) Update(ctx context.Context, movie domain.Movie) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE movies
        SET title = $2, about = $3, language = $4, country = $5, duration = $6,
            trailer_url = $7, cover_url = $8, score = $9, award = $10, budget = $11,
            release_date = $12, director_id = $13, producer_id = $14, company_id = $15,
            updated_at = now()
        WHERE id = $1 AND deleted_at IS NULL
    `, movie.ID, movie.Title, movie.About, movie.Language, movie.Country, movie.Duration,
		movie.TrailerURL, movie.CoverURL, movie.Score, movie.Award, movie.Budget,
		movie.ReleaseDate, movie.DirectorID, movie.ProducerID, movie.CompanyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete marks a movie as deleted without removing the row.
func (r *MoviesRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE movies SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL
    `, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns live movies ordered by creation time, newest first.
func (r *MoviesRepository) List(ctx context.Context, skip, limit int) ([]domain.Movie, error) {
	if limit <= 0 {
		limit = 20
	} else if limit > 100 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}

	query := fmt.Sprintf(`
        SELECT %s FROM movies WHERE deleted_at IS NULL
        ORDER BY created_at DESC, id DESC
        LIMIT $1 OFFSET $2
    `, movieColumns)

	rows, err := r.pool.Query(ctx, query, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]domain.Movie, 0)
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}
	return movies, rows.Err()
}

// Details fetches a movie together with the viewer's watchlist and rating
// flags. viewerID zero means an anonymous read.
func (r *MoviesRepository) Details(ctx context.Context, id, viewerID int64) (domain.MovieDetails, error) {
	movie, err := r.GetByID(ctx, id)
	if err != nil {
		return domain.MovieDetails{}, err
	}

	details := domain.MovieDetails{Movie: movie}
	if viewerID == 0 {
		return details, nil
	}

	err = r.pool.QueryRow(ctx, `
        SELECT EXISTS (SELECT 1 FROM watch_list WHERE user_id = $1 AND movie_id = $2)
    `, viewerID, id).Scan(&details.InWatchlist)
	if err != nil {
		return domain.MovieDetails{}, err
	}

	err = r.pool.QueryRow(ctx, `
        SELECT rate FROM user_ratings WHERE user_id = $1 AND movie_id = $2
    `, viewerID, id).Scan(&details.Rate)
	switch {
	case err == nil:
		details.Rated = true
	case errors.Is(err, pgx.ErrNoRows):
	default:
		return domain.MovieDetails{}, err
	}

	return details, nil
}

// AddGenre attaches a genre to a movie. Unknown genres and duplicate
// attachments are client errors.
func (r *MoviesRepository) AddGenre(ctx context.Context, movieID int64, genre string) error {
	var known bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM genres WHERE name = $1)`, genre).Scan(&known)
	if err != nil {
		return err
	}
	if !known {
		return apperr.BadRequest(fmt.Sprintf("Incorrect genre name %s", genre))
	}

	_, err = r.pool.Exec(ctx, `
        INSERT INTO movie_genres (movie_id, genre_name) VALUES ($1, $2)
    `, movieID, genre)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.BadRequest(fmt.Sprintf("Genre %s already exists for this movie", genre))
		}
		return err
	}
	return nil
}

func (r *MoviesRepository) genres(ctx context.Context, movieID int64) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT genre_name FROM movie_genres WHERE movie_id = $1 ORDER BY genre_name
    `, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var genres []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		genres = append(genres, name)
	}
	return genres, rows.Err()
}

func scanMovie(row pgx.Row) (domain.Movie, error) {
	var movie domain.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.About,
		&movie.Language,
		&movie.Country,
		&movie.Duration,
		&movie.TrailerURL,
		&movie.CoverURL,
		&movie.Score,
		&movie.Rating,
		&movie.Award,
		&movie.Budget,
		&movie.ReleaseDate,
		&movie.DirectorID,
		&movie.ProducerID,
		&movie.CompanyID,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	return movie, err
}
