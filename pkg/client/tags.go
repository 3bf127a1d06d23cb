package client

import (
	"fmt"

	"github.com/braunma/netbox-baseline/internal/constants"
)

// TagManager handles the optional managed tag
type TagManager struct {
	client *NetBoxClient
}

// NewTagManager creates a new tag manager
func NewTagManager(client *NetBoxClient) *TagManager {
	return &TagManager{client: client}
}

// Ensure ensures a tag exists, creating it if necessary
func (tm *TagManager) Ensure(slug string) (int, error) {
	if tm.client.dryRun {
		return 0, nil
	}

	// Try to find existing tag
	tags, err := tm.client.Filter(constants.EndpointTags, map[string]interface{}{"slug": slug})
	if err != nil {
		return 0, fmt.Errorf("failed to filter tags: %w", err)
	}

	if len(tags) > 0 {
		return tags[0].ID(), nil
	}

	tagData := map[string]interface{}{
		"slug":        slug,
		"name":        constants.ManagedTagName,
		"color":       constants.ManagedTagColor,
		"description": constants.ManagedTagDescription,
	}

	tag, err := tm.client.Request("POST", "/api/"+constants.EndpointTags+"/", tagData)
	if err != nil {
		// Handle race condition - another process might have created it
		tm.client.logger.Warning("Tag creation failed, retrying lookup: %v", err)
		tags, retryErr := tm.client.Filter(constants.EndpointTags, map[string]interface{}{"slug": slug})
		if retryErr != nil {
			return 0, fmt.Errorf("failed to retry tag lookup: %w", retryErr)
		}
		if len(tags) > 0 {
			return tags[0].ID(), nil
		}
		return 0, fmt.Errorf("failed to create tag: %w", err)
	}

	tm.client.logger.Success("Created system tag: %s", slug)
	return tag.ID(), nil
}

// InjectTag returns a copy of payload with tagID added to its tags
func (tm *TagManager) InjectTag(payload map[string]interface{}, tagID int) map[string]interface{} {
	if tagID == 0 {
		return payload
	}

	result := make(map[string]interface{}, len(payload)+1)
	for k, v := range payload {
		result[k] = v
	}

	var tagIDs []int
	switch existing := result["tags"].(type) {
	case []int:
		tagIDs = append(tagIDs, existing...)
	case []interface{}:
		for _, tag := range existing {
			if id := Object(map[string]interface{}{"id": tag}).ID(); id != 0 {
				tagIDs = append(tagIDs, id)
			}
		}
	}

	for _, id := range tagIDs {
		if id == tagID {
			result["tags"] = tagIDs
			return result
		}
	}

	result["tags"] = append(tagIDs, tagID)
	return result
}
