package handlers

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/nandymandy1/auth-crud-vue-flutter/internal/models"
	"github.com/nandymandy1/auth-crud-vue-flutter/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// fakeUserRepo is an in-memory repositories.UserRepository.
type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*models.User{}}
}

func (f *fakeUserRepo) CreateUser(u *models.User) error {
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserByUsername(username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUsers() ([]models.User, error) {
	var users []models.User
	for _, u := range f.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (f *fakeUserRepo) GetUsersByIDs(ids []uint) ([]models.User, error) {
	var users []models.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			users = append(users, *u)
		}
	}
	return users, nil
}

// fakePostRepo is an in-memory repositories.PostRepository.
type fakePostRepo struct {
	posts map[string]*models.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[string]*models.Post{}}
}

func (f *fakePostRepo) CreatePost(_ context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	post.UpdatedAt = post.CreatedAt
	stored := *post
	f.posts[post.ID.Hex()] = &stored
	return nil
}

func (f *fakePostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	if p, ok := f.posts[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, repositories.ErrPostNotFound
}

func (f *fakePostRepo) UpdatePost(_ context.Context, id string, post *models.Post) error {
	stored, ok := f.posts[id]
	if !ok {
		return repositories.ErrPostNotFound
	}
	stored.Title = post.Title
	stored.Body = post.Body
	stored.ImageURL = post.ImageURL
	stored.UpdatedAt = time.Now()
	return nil
}

func (f *fakePostRepo) DeletePost(_ context.Context, id string) error {
	if _, ok := f.posts[id]; !ok {
		return repositories.ErrPostNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) Paginate(_ context.Context, userID *uint, page int64) ([]models.Post, int64, error) {
	if page < 1 {
		page = 1
	}
	var matched []models.Post
	for _, p := range f.posts {
		if userID == nil || p.UserID == *userID {
			matched = append(matched, *p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	limit := int64(models.DefaultPageSize)
	start := (page - 1) * limit
	if start >= total {
		return nil, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

// fakeStore is an in-memory storage.Store. Setting deleteErr makes every
// Delete fail, to exercise the best-effort cleanup paths.
type fakeStore struct {
	files     map[string]string
	deleteErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{files: map[string]string{}}
}

func (f *fakeStore) Save(_ context.Context, src io.Reader, _ int64, name, _ string) (string, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}
	path := "/uploads/images/" + name
	f.files[path] = string(data)
	return path, nil
}

func (f *fakeStore) Delete(_ context.Context, path string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.files, path)
	return nil
}
