package repository

import "github.com/inkwell-hq/inkwell/internal/dto"

func orderDirection(order dto.SortOrder) string {
	if order == dto.SortDescending {
		return "desc"
	}
	return "asc"
}
