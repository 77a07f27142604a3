package cache

import (
	"fmt"
)

const (
	cacheImage = "%s:%s"
	cacheUrls  = "urls:%s"
)

func constructKey(propertyID string, imageName string) string {
	return fmt.Sprintf(cacheImage, propertyID, imageName)
}

func constructKeyUrls(propertyID string) string {
	return fmt.Sprintf(cacheUrls, propertyID)
}
