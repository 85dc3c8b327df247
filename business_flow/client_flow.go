package businessflow

import (
	"context"
	"time"

	"github.com/cliphaus/cliphaus-platform/app/dto"
	"github.com/cliphaus/cliphaus-platform/models"
	"github.com/cliphaus/cliphaus-platform/repository"
	"github.com/cliphaus/cliphaus-platform/utils"
	"github.com/google/uuid"
)

// ClientFlow defines brand client management operations
type ClientFlow interface {
	CreateClient(ctx context.Context, req *dto.CreateClientRequest, metadata *ClientMetadata) (*dto.ClientResponse, error)
	ListClients(ctx context.Context, page, pageSize int) (*dto.ListClientsResponse, error)
}

// ClientFlowImpl implements the client business flow
type ClientFlowImpl struct {
	clientRepo repository.ClientRepository
}

// NewClientFlow creates a new client flow instance
func NewClientFlow(clientRepo repository.ClientRepository) ClientFlow {
	return &ClientFlowImpl{
		clientRepo: clientRepo,
	}
}

func (f *ClientFlowImpl) CreateClient(ctx context.Context, req *dto.CreateClientRequest, metadata *ClientMetadata) (*dto.ClientResponse, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request is required", nil)
	}

	existing, err := f.clientRepo.ByEmail(ctx, req.Email)
	if err != nil {
		return nil, NewBusinessError("CLIENT_LOOKUP_FAILED", "Failed to check client email", err)
	}
	if existing != nil {
		return nil, NewBusinessError("EMAIL_EXISTS", "A client with this email already exists", ErrEmailAlreadyExists)
	}

	client := models.Client{
		UUID:        uuid.New(),
		Name:        req.Name,
		CompanyName: req.CompanyName,
		Email:       req.Email,
		IsActive:    utils.ToPtr(true),
	}
	if err := f.clientRepo.Save(ctx, &client); err != nil {
		return nil, NewBusinessError("CLIENT_CREATION_FAILED", "Client creation failed", err)
	}

	return &dto.ClientResponse{
		Message: "Client created successfully",
		Client:  toClientItem(&client),
	}, nil
}

func (f *ClientFlowImpl) ListClients(ctx context.Context, page, pageSize int) (*dto.ListClientsResponse, error) {
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return nil, NewBusinessError("INVALID_PAGE", "page must be at least 1", ErrInvalidPage)
	}
	if pageSize == 0 {
		pageSize = 20
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, NewBusinessError("INVALID_PAGE_SIZE", "page size must be between 1 and 100", ErrInvalidPageSize)
	}

	total, err := f.clientRepo.Count(ctx, models.ClientFilter{})
	if err != nil {
		return nil, err
	}

	clients, err := f.clientRepo.ByFilter(ctx, models.ClientFilter{}, "created_at DESC, id DESC", pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ClientItem, 0, len(clients))
	for _, client := range clients {
		items = append(items, toClientItem(client))
	}

	return &dto.ListClientsResponse{
		Message: "Clients retrieved",
		Items:   items,
		Total:   total,
	}, nil
}

func toClientItem(client *models.Client) dto.ClientItem {
	return dto.ClientItem{
		ID:          client.ID,
		UUID:        client.UUID.String(),
		Name:        client.Name,
		CompanyName: client.CompanyName,
		Email:       client.Email,
		IsActive:    utils.IsTrue(client.IsActive),
		CreatedAt:   client.CreatedAt.Format(time.RFC3339),
	}
}
