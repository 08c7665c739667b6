package handler

import (
	"reclaim/internal/usecase"
)

var (
	userHandler         *UserHandler
	itemHandler         *ItemHandler
	messageHandler      *MessageHandler
	sightingHandler     *SightingHandler
	rewardHandler       *RewardHandler
	notificationHandler *NotificationHandler
)

func Setup(
	userUseCase *usecase.UserUseCase,
	itemUseCase *usecase.ItemUseCase,
	messagingUseCase *usecase.MessagingUseCase,
	attachments *usecase.AttachmentPipeline,
	sightingUseCase *usecase.SightingUseCase,
	rewardUseCase *usecase.RewardUseCase,
	notificationUseCase *usecase.NotificationUseCase,
) {
	userHandler = NewUserHandler(userUseCase)
	itemHandler = NewItemHandler(itemUseCase)
	messageHandler = NewMessageHandler(messagingUseCase, attachments)
	sightingHandler = NewSightingHandler(sightingUseCase)
	rewardHandler = NewRewardHandler(rewardUseCase)
	notificationHandler = NewNotificationHandler(notificationUseCase)
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetItemHandler() *ItemHandler {
	return itemHandler
}

func GetMessageHandler() *MessageHandler {
	return messageHandler
}

func GetSightingHandler() *SightingHandler {
	return sightingHandler
}

func GetRewardHandler() *RewardHandler {
	return rewardHandler
}

func GetNotificationHandler() *NotificationHandler {
	return notificationHandler
}
