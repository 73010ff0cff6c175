package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"debatecamp/internal/logger"
	"debatecamp/internal/models"
	"debatecamp/internal/storage"
)

const documentContentType = "application/json"

// DocumentReviewRepository хранит всю коллекцию одним JSON-документом.
// Каждая мутация - это чтение всего документа, одно изменение и полная перезапись.
// Все обращения к документу идут через mu, поэтому в пределах процесса
// параллельные Create не теряют записи. Несколько процессов на одном
// документе по-прежнему работают по принципу "последний пишущий выигрывает".
type DocumentReviewRepository struct {
	mu       sync.Mutex
	storage  storage.Storage
	document string
}

func NewDocumentReviewRepository(store storage.Storage, document string) *DocumentReviewRepository {
	return &DocumentReviewRepository{
		storage:  store,
		document: document,
	}
}

func (r *DocumentReviewRepository) FindAll(ctx context.Context) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(ctx)
}

func (r *DocumentReviewRepository) FindApproved(ctx context.Context) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reviews, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return models.FilterApproved(reviews), nil
}

func (r *DocumentReviewRepository) Create(ctx context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reviews, err := r.load(ctx)
	if err != nil {
		return err
	}

	for i := range reviews {
		if reviews[i].ID == review.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateReview, review.ID)
		}
	}

	return r.save(ctx, append(reviews, *review))
}

func (r *DocumentReviewRepository) UpdateApproval(ctx context.Context, id string, approved bool) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reviews, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range reviews {
		if reviews[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrReviewNotFound
	}

	reviews[idx].Approved = approved
	if err := r.save(ctx, reviews); err != nil {
		return nil, err
	}

	updated := reviews[idx]
	return &updated, nil
}

// load читает документ целиком. Отсутствующий документ - пустая коллекция,
// при этом документ создается как "[]".
func (r *DocumentReviewRepository) load(ctx context.Context) ([]models.Review, error) {
	start := time.Now()
	location := r.storage.Location(r.document)

	rc, err := r.storage.Get(ctx, r.document)
	if errors.Is(err, storage.ErrObjectNotFound) {
		// Ошибка инициализации не мешает чтению: коллекция и так пуста
		if initErr := r.save(ctx, []models.Review{}); initErr != nil {
			logger.Warn("Failed to initialize reviews document", "path", location, "error", initErr)
		} else {
			logger.Info("Initialized empty reviews document", "path", location)
		}
		return []models.Review{}, nil
	}
	if err != nil {
		logger.StorageLog("read", location, time.Since(start), err)
		return nil, fmt.Errorf("read %s: %w", location, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		logger.StorageLog("read", location, time.Since(start), err)
		return nil, fmt.Errorf("read %s: %w", location, err)
	}

	reviews := []models.Review{}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &reviews); err != nil {
			err = fmt.Errorf("%w: %v", ErrCorruptDocument, err)
			logger.StorageLog("decode", location, time.Since(start), err)
			return nil, fmt.Errorf("decode %s: %w", location, err)
		}
	}
	if reviews == nil {
		// Документ "null" считаем пустой коллекцией
		reviews = []models.Review{}
	}

	logger.StorageLog("read", location, time.Since(start), nil)
	return reviews, nil
}

func (r *DocumentReviewRepository) save(ctx context.Context, reviews []models.Review) error {
	start := time.Now()
	location := r.storage.Location(r.document)

	if reviews == nil {
		reviews = []models.Review{}
	}
	data, err := json.MarshalIndent(reviews, "", "  ")
	if err != nil {
		return fmt.Errorf("encode reviews: %w", err)
	}

	err = r.storage.Save(ctx, r.document, bytes.NewReader(data), documentContentType)
	logger.StorageLog("write", location, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("write %s: %w", location, err)
	}
	return nil
}
