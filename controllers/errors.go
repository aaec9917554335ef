package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ardiannf/scanorder/services"
	"github.com/ardiannf/scanorder/utils"
)

// respondServiceError memetakan error dari service: ValidationError
// menjadi 400, sisanya 500 generik dengan detail hanya masuk log.
func respondServiceError(c *gin.Context, err error) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		utils.RespondError(c, http.StatusBadRequest, ve)
		return
	}

	utils.ErrorLogger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
}
