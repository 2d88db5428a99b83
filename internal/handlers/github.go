package handlers

import (
	"net/http"

	"github.com/alimgiray/contribution-analyzer/internal/services"
	"github.com/gin-gonic/gin"
)

// GitHubHandler passes contributor and commit listings straight through from GitHub
type GitHubHandler struct {
	githubService *services.GitHubService
}

func NewGitHubHandler(githubService *services.GitHubService) *GitHubHandler {
	return &GitHubHandler{
		githubService: githubService,
	}
}

// GetContributors returns the repository contributors
func (h *GitHubHandler) GetContributors(c *gin.Context) {
	contributors, err := h.githubService.ListContributors(c.Request.Context(), c.Param("owner"), c.Param("repo"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contributors)
}

// GetCommits returns the latest 100 commits
func (h *GitHubHandler) GetCommits(c *gin.Context) {
	commits, err := h.githubService.ListRecentCommits(c.Request.Context(), c.Param("owner"), c.Param("repo"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, commits)
}
