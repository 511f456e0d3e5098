package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Filichkin/Blogicum/internal/auth"
	"github.com/Filichkin/Blogicum/internal/authz"
	"github.com/Filichkin/Blogicum/internal/blog"
	"github.com/Filichkin/Blogicum/internal/user"
	"github.com/Filichkin/Blogicum/models"
)

// CommentCounter отдает число комментариев поста (реализуется хранилищем
// комментариев, внедряется после создания обоих хранилищ).
type CommentCounter interface {
	CountForPost(postID uint) int
}

type PostMemoryStorage struct {
	mu         sync.Mutex
	posts      map[uint]*models.Post
	categories map[uint]*models.Category
	locations  map[uint]*models.Location
	nextID     uint

	userStorage    user.UserStorage // для выборки профиля по username (внедрение зависимости)
	commentCounter CommentCounter
}

func NewPostMemoryStorage(userStore user.UserStorage) *PostMemoryStorage {
	return &PostMemoryStorage{
		posts:       make(map[uint]*models.Post),
		categories:  make(map[uint]*models.Category),
		locations:   make(map[uint]*models.Location),
		nextID:      1,
		userStorage: userStore,
	}
}

// SetCommentCounter внедряет счетчик комментариев (хранилище комментариев
// само зависит от хранилища постов, поэтому связываем после создания)
func (s *PostMemoryStorage) SetCommentCounter(c CommentCounter) {
	s.commentCounter = c
}

// clonePost - копия поста. Наружу отдаем только снимки: хранилище
// продолжает изменять свой экземпляр (счетчик лайков), и общий указатель
// означал бы гонку с читателями.
func clonePost(p *models.Post) *models.Post {
	c := *p
	return &c
}

// setTotalLikes выставляет денормализованный счетчик под мьютексом постов;
// вызывается хранилищем лайков после пересчета от множества ребер
func (s *PostMemoryStorage) setTotalLikes(id uint, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if post, ok := s.posts[id]; ok {
		post.TotalLikes = n
	}
}

// AddCategory регистрирует категорию (категории создаются администратором,
// отдельного пользовательского API для них нет)
func (s *PostMemoryStorage) AddCategory(category *models.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if category.ID == 0 {
		category.ID = s.nextID
		s.nextID++
	}
	s.categories[category.ID] = category
}

func (s *PostMemoryStorage) AddLocation(location *models.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if location.ID == 0 {
		location.ID = s.nextID
		s.nextID++
	}
	s.locations[location.ID] = location
}

// isVisibleLocked - предикат видимости; вызывается под мьютексом.
// Автор видит свои посты всегда, остальные - только опубликованные с
// наступившей датой публикации и опубликованной категорией.
func (s *PostMemoryStorage) isVisibleLocked(p *models.Post, viewerID uint, now time.Time) bool {
	if p.AuthorID == viewerID {
		return true
	}
	if !p.IsPublished || p.PubDate.After(now) {
		return false
	}
	if p.CategoryID == nil {
		return false
	}
	category, ok := s.categories[*p.CategoryID]
	return ok && category.IsPublished
}

// sortFeed - порядок ленты: новые сверху, при равной дате - по ID
func sortFeed(posts []*models.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].PubDate.Equal(posts[j].PubDate) {
			return posts[i].ID < posts[j].ID
		}
		return posts[i].PubDate.After(posts[j].PubDate)
	})
}

// annotate проставляет CommentCount; принимает снимки, поэтому пишет
// в приватные для вызова копии и вызывается без мьютекса постов
func (s *PostMemoryStorage) annotate(posts []*models.Post) {
	if s.commentCounter == nil {
		return
	}
	for _, p := range posts {
		p.CommentCount = s.commentCounter.CountForPost(p.ID)
	}
}

func (s *PostMemoryStorage) CreatePost(ctx context.Context, input blog.PostInput) (*models.Post, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post := &models.Post{
		Title:       input.Title,
		Text:        input.Text,
		PubDate:     input.PubDate,
		IsPublished: input.IsPublished,
		Image:       input.Image,
		AuthorID:    userID,
		CategoryID:  input.CategoryID,
		LocationID:  input.LocationID,
	}
	post.ID = s.nextID
	s.nextID++
	post.CreatedAt = time.Now()

	s.posts[post.ID] = post
	return clonePost(post), nil
}

func (s *PostMemoryStorage) UpdatePost(ctx context.Context, id uint, input blog.PostInput) (*models.Post, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[id]
	if !exists {
		return nil, blog.ErrPostNotFound
	}

	if !authz.CanMutate(userID, post) {
		return nil, blog.ErrNotAuthor
	}

	post.Title = input.Title
	post.Text = input.Text
	post.PubDate = input.PubDate
	post.IsPublished = input.IsPublished
	post.Image = input.Image
	post.CategoryID = input.CategoryID
	post.LocationID = input.LocationID

	return clonePost(post), nil
}

func (s *PostMemoryStorage) DeletePost(ctx context.Context, id uint) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[id]
	if !exists {
		return blog.ErrPostNotFound
	}

	if !authz.CanMutate(userID, post) {
		return blog.ErrNotAuthor
	}

	delete(s.posts, id)
	return nil
}

func (s *PostMemoryStorage) GetPostByID(id uint) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[id]
	if !exists {
		return nil, blog.ErrPostNotFound
	}
	return clonePost(post), nil
}

func (s *PostMemoryStorage) GetVisible(viewerID, id uint) (*models.Post, error) {
	s.mu.Lock()
	post, exists := s.posts[id]
	if !exists {
		s.mu.Unlock()
		return nil, blog.ErrPostNotFound
	}

	// дата публикации здесь намеренно не проверяется (в отличие от лент)
	if post.AuthorID != viewerID {
		published := false
		if post.IsPublished && post.CategoryID != nil {
			category, ok := s.categories[*post.CategoryID]
			published = ok && category.IsPublished
		}
		if !published {
			s.mu.Unlock()
			return nil, blog.ErrPostNotFound
		}
	}
	snapshot := clonePost(post)
	s.mu.Unlock()

	s.annotate([]*models.Post{snapshot})
	return snapshot, nil
}

func (s *PostMemoryStorage) ListVisible(viewerID uint) ([]*models.Post, error) {
	s.mu.Lock()
	now := time.Now()
	var posts []*models.Post
	for _, p := range s.posts {
		if s.isVisibleLocked(p, viewerID, now) {
			posts = append(posts, clonePost(p))
		}
	}
	s.mu.Unlock()

	sortFeed(posts)
	s.annotate(posts)
	return posts, nil
}

func (s *PostMemoryStorage) ListCategory(viewerID uint, slug string) (*models.Category, []*models.Post, error) {
	s.mu.Lock()

	// неопубликованная категория скрывает всю ленту даже от авторов постов
	var category *models.Category
	for _, c := range s.categories {
		if c.Slug == slug {
			category = c
			break
		}
	}
	if category == nil || !category.IsPublished {
		s.mu.Unlock()
		return nil, nil, blog.ErrCategoryNotFound
	}
	categorySnapshot := *category

	now := time.Now()
	var posts []*models.Post
	for _, p := range s.posts {
		if p.CategoryID == nil || *p.CategoryID != category.ID {
			continue
		}
		if s.isVisibleLocked(p, viewerID, now) {
			posts = append(posts, clonePost(p))
		}
	}
	s.mu.Unlock()

	sortFeed(posts)
	s.annotate(posts)
	return &categorySnapshot, posts, nil
}

func (s *PostMemoryStorage) ListProfile(viewerID uint, username string) ([]*models.Post, error) {
	author, err := s.userStorage.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	now := time.Now()
	own := author.ID == viewerID
	var posts []*models.Post
	for _, p := range s.posts {
		if p.AuthorID != author.ID {
			continue
		}
		// свои посты автор видит все, без фильтра видимости
		if own || s.isVisibleLocked(p, viewerID, now) {
			posts = append(posts, clonePost(p))
		}
	}
	s.mu.Unlock()

	sortFeed(posts)
	s.annotate(posts)
	return posts, nil
}
