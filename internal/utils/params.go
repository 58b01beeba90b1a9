package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	idStr := ctx.Param(name)

	if idStr == "" {
		return 0, errors.New(name + " not found")
	}

	id, err := strconv.ParseUint(idStr, 10, 32)

	if err != nil {
		return 0, errors.New("Invalid " + name)
	}

	return uint(id), nil
}

func GetProjectID(ctx *gin.Context) (uint, error) {
	return parseIDParam(ctx, "project_id")
}

func GetProposalID(ctx *gin.Context) (uint, error) {
	return parseIDParam(ctx, "proposal_id")
}

func GetContractID(ctx *gin.Context) (uint, error) {
	return parseIDParam(ctx, "contract_id")
}

func GetMilestoneID(ctx *gin.Context) (uint, error) {
	return parseIDParam(ctx, "milestone_id")
}

func GetServiceID(ctx *gin.Context) (uint, error) {
	return parseIDParam(ctx, "service_id")
}

func GetUserID(ctx *gin.Context) (uint, error) {
	return parseIDParam(ctx, "user_id")
}
