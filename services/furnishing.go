package services

import "housing-info/models"

// CountFurnishing partitions houses by furnishing status.
func CountFurnishing(houses []models.House) models.FurnishingReport {
	report := models.FurnishingReport{
		Counts: make(map[models.FurnishingStatus]int, len(models.FurnishingStatuses)),
		Total:  len(houses),
	}
	for _, s := range models.FurnishingStatuses {
		report.Counts[s] = 0
	}
	for _, h := range houses {
		report.Counts[h.FurnishingStatus]++
	}
	return report
}
