package server

import (
	"context"
	"encoding/json"
	"log"

	"clipstream/internal/middleware"
	"clipstream/internal/observability"
)

// Event type constants prevent typos in event names.
const (
	EventVideoCreated         = "video_created"
	EventVideoReactionUpdated = "video_reaction_updated"
	EventCommentCreated       = "comment_created"
	EventCommentDeleted       = "comment_deleted"
	EventSubscriptionUpdated  = "subscription_updated"
)

func (s *Server) publishUserEvent(userID uint, eventType string, payload map[string]interface{}) {
	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}
	observability.WebSocketEventsTotal.WithLabelValues(eventType).Inc()
	middleware.EngagementEvents.WithLabelValues(eventType).Inc()
	message := string(eventJSON)
	if s.hub != nil {
		s.hub.Broadcast(userID, message)
	}
	if s.notifier != nil {
		if err := s.notifier.PublishUser(context.Background(), userID, message); err != nil {
			log.Printf("failed to publish %s event to user %d: %v", eventType, userID, err)
		}
	}
}

func (s *Server) publishBroadcastEvent(eventType string, payload map[string]interface{}) {
	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}
	observability.WebSocketEventsTotal.WithLabelValues(eventType).Inc()
	middleware.EngagementEvents.WithLabelValues(eventType).Inc()
	message := string(eventJSON)
	if s.hub != nil {
		s.hub.BroadcastAll(message)
	}
	if s.notifier != nil {
		if err := s.notifier.PublishBroadcast(context.Background(), message); err != nil {
			log.Printf("failed to publish %s broadcast event: %v", eventType, err)
		}
	}
}
