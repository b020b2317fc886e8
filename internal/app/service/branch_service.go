package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/aryansawant3579-cell/review-app/internal/app/model"
	"github.com/aryansawant3579-cell/review-app/internal/app/repository"
	"github.com/aryansawant3579-cell/review-app/pkg/logger"
)

var (
	ErrBranchNotFound   = errors.New("branch not found")
	ErrBranchCodeExists = errors.New("branch code already exists")
)

type CreateBranchInput struct {
	Name       string
	Location   string
	BranchCode string
}

type BranchService interface {
	Create(input CreateBranchInput) (*model.Branch, error)
	List() ([]model.Branch, error)
	ListPublic() ([]model.PublicBranch, error)
}

type branchService struct {
	branchRepo repository.BranchRepository
}

func NewBranchService(branchRepo repository.BranchRepository) BranchService {
	return &branchService{branchRepo: branchRepo}
}

func (s *branchService) Create(input CreateBranchInput) (*model.Branch, error) {
	existing, err := s.branchRepo.FindByCode(input.BranchCode)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check branch code", err, map[string]interface{}{
			"branch_code": input.BranchCode,
		})
		return nil, err
	}
	if existing != nil {
		logger.Warn("Branch creation rejected: duplicate code", map[string]interface{}{
			"branch_code": input.BranchCode,
		})
		return nil, ErrBranchCodeExists
	}

	branch := &model.Branch{
		Name:       input.Name,
		Location:   input.Location,
		BranchCode: input.BranchCode,
	}

	if err := s.branchRepo.Create(branch); err != nil {
		logger.Error("Failed to create branch", err, map[string]interface{}{
			"branch_code": input.BranchCode,
		})
		return nil, err
	}

	logger.Info("Branch created", map[string]interface{}{
		"branch_id":   branch.ID,
		"branch_code": branch.BranchCode,
	})
	return branch, nil
}

func (s *branchService) List() ([]model.Branch, error) {
	return s.branchRepo.FindAll()
}

// ListPublic returns the reduced branch view for the unauthenticated
// collection form.
func (s *branchService) ListPublic() ([]model.PublicBranch, error) {
	branches, err := s.branchRepo.FindAll()
	if err != nil {
		return nil, err
	}

	public := make([]model.PublicBranch, 0, len(branches))
	for i := range branches {
		public = append(public, branches[i].Public())
	}
	return public, nil
}
