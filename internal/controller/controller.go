package controller

import (
	appcontext "github.com/SeakMengs/DocSign/internal/app_context"
)

type baseController struct {
	app *appcontext.Application
}

type Controller struct {
	Index    *IndexController
	Document *DocumentController
}

func newBaseController(app *appcontext.Application) *baseController {
	return &baseController{app: app}
}

func NewController(app *appcontext.Application) *Controller {
	bc := newBaseController(app)

	return &Controller{
		Index:    &IndexController{baseController: bc},
		Document: &DocumentController{baseController: bc},
	}
}
