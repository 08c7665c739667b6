package handler

import (
	"reclaim/internal/usecase"
	"reclaim/pkg/response"

	"github.com/labstack/echo/v4"
)

type RewardHandler struct {
	rewardUseCase *usecase.RewardUseCase
}

func NewRewardHandler(rewardUseCase *usecase.RewardUseCase) *RewardHandler {
	return &RewardHandler{
		rewardUseCase: rewardUseCase,
	}
}

type createRewardRequest struct {
	ItemID      string  `json:"item_id" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
}

func (h *RewardHandler) CreateReward(c echo.Context) error {
	var req createRewardRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	ownerID := c.Get("uid").(string)

	reward, err := h.rewardUseCase.CreateReward(c.Request().Context(), ownerID, usecase.CreateRewardInput{
		ItemID:      req.ItemID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, reward)
}

func (h *RewardHandler) GetByItem(c echo.Context) error {
	reward, err := h.rewardUseCase.GetByItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, reward)
}

func (h *RewardHandler) ListMyRewards(c echo.Context) error {
	ownerID := c.Get("uid").(string)

	rewards, err := h.rewardUseCase.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, rewards)
}

func (h *RewardHandler) CancelReward(c echo.Context) error {
	ownerID := c.Get("uid").(string)

	reward, err := h.rewardUseCase.CancelReward(c.Request().Context(), c.Param("id"), ownerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, reward)
}

type claimRewardRequest struct {
	Message string `json:"message"`
}

func (h *RewardHandler) ClaimReward(c echo.Context) error {
	var req claimRewardRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	claimantID := c.Get("uid").(string)

	claim, err := h.rewardUseCase.ClaimReward(c.Request().Context(), claimantID, usecase.ClaimRewardInput{
		RewardID: c.Param("id"),
		Message:  req.Message,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, claim)
}

func (h *RewardHandler) ListClaims(c echo.Context) error {
	ownerID := c.Get("uid").(string)

	claims, err := h.rewardUseCase.ListClaims(c.Request().Context(), c.Param("id"), ownerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, claims)
}

func (h *RewardHandler) ListMyClaims(c echo.Context) error {
	claimantID := c.Get("uid").(string)

	claims, err := h.rewardUseCase.ListMyClaims(c.Request().Context(), claimantID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, claims)
}

func (h *RewardHandler) ApproveClaim(c echo.Context) error {
	ownerID := c.Get("uid").(string)

	claim, err := h.rewardUseCase.ApproveClaim(c.Request().Context(), c.Param("id"), ownerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, claim)
}

func (h *RewardHandler) RejectClaim(c echo.Context) error {
	ownerID := c.Get("uid").(string)

	claim, err := h.rewardUseCase.RejectClaim(c.Request().Context(), c.Param("id"), ownerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, claim)
}
