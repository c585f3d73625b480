package handler

import (
	"time"

	"github.com/mkalanick/postboard/internal/domain"
)

// UserDTO is the JSON representation of the authenticated user's own record.
type UserDTO struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   string `json:"createdAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}

// AuthorDTO is the public projection of a post's owner.
type AuthorDTO struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"displayName"`
}

// PostDTO is the JSON representation of a post.
type PostDTO struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Author    *AuthorDTO `json:"author"`
	CreatedAt string     `json:"createdAt"`
	UpdatedAt string     `json:"updatedAt"`
}

func toPostDTO(p *domain.Post) PostDTO {
	dto := PostDTO{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
	if p.Author != nil {
		dto.Author = &AuthorDTO{ID: p.Author.ID, DisplayName: p.Author.DisplayName}
	}
	return dto
}

func toPostDTOs(posts []domain.Post) []PostDTO {
	dtos := make([]PostDTO, len(posts))
	for i := range posts {
		dtos[i] = toPostDTO(&posts[i])
	}
	return dtos
}

// SearchResultDTO is the JSON representation of a search hit. The author
// exposes only the display name.
type SearchResultDTO struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Author    struct {
		DisplayName string `json:"displayName"`
	} `json:"author"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toSearchResultDTOs(posts []domain.Post) []SearchResultDTO {
	dtos := make([]SearchResultDTO, len(posts))
	for i := range posts {
		p := &posts[i]
		dtos[i] = SearchResultDTO{
			ID:        p.ID,
			Title:     p.Title,
			Content:   p.Content,
			CreatedAt: p.CreatedAt.Format(time.RFC3339),
			UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
		}
		if p.Author != nil {
			dtos[i].Author.DisplayName = p.Author.DisplayName
		}
	}
	return dtos
}
