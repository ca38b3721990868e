package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stockcontrol-api/internal/application/dto"
	"github.com/tu-usuario/stockcontrol-api/internal/application/ledger"
)

// ProjectHandler maneja las peticiones HTTP del ciclo de vida de proyectos.
type ProjectHandler struct {
	uc *ledger.ProjectUseCase
}

// NewProjectHandler construye el handler.
func NewProjectHandler(uc *ledger.ProjectUseCase) *ProjectHandler {
	return &ProjectHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar una obra con su presupuesto de materiales
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProjectRequest  true  "description (n° de presupuesto), client, estimated_days, materials"
// @Success      201   {object}  dto.ProjectResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]ledger.BudgetLineInput, 0, len(in.Materials))
	for _, m := range in.Materials {
		lines = append(lines, ledger.BudgetLineInput{MaterialID: m.MaterialID, Quantity: m.Quantity})
	}
	project, err := h.uc.CreateProject(c.Context(), ledger.CreateProjectInput{
		Description:   in.Description,
		Client:        in.Client,
		StartDate:     in.StartDate,
		EstimatedDays: in.EstimatedDays,
		Materials:     lines,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToProjectResponse(project))
}

// List godoc
// @Summary      Listar proyectos
// @Tags         projects
// @Produce      json
// @Param        status  query  string  false  "PENDIENTE o COMPLETADO; vacío = todos"
// @Success      200  {array}  dto.ProjectResponse
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	projects, err := h.uc.ListProjects(c.Context(), c.Query("status"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToProjectResponses(projects))
}

// GetByID godoc
// @Summary      Obtener un proyecto
// @Tags         projects
// @Produce      json
// @Param        id  path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.ProjectResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) GetByID(c *fiber.Ctx) error {
	project, err := h.uc.GetProject(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToProjectResponse(project))
}

// AddBudgetLine godoc
// @Summary      Agregar una línea al presupuesto (reserva la cantidad)
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del proyecto"
// @Param        body  body  dto.AddBudgetLineRequest  true  "material_id y cantidad presupuestada"
// @Success      200   {object}  dto.ProjectResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/materials [post]
func (h *ProjectHandler) AddBudgetLine(c *fiber.Ctx) error {
	var in dto.AddBudgetLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	project, err := h.uc.AddBudgetLine(c.Context(), c.Params("id"), in.MaterialID, in.Quantity)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToProjectResponse(project))
}

// RemoveBudgetLine godoc
// @Summary      Quitar una línea del presupuesto (libera la reserva)
// @Tags         projects
// @Produce      json
// @Param        id          path  string  true  "ID del proyecto"
// @Param        materialId  path  string  true  "ID del material"
// @Success      200  {object}  dto.ProjectResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/materials/{materialId} [delete]
func (h *ProjectHandler) RemoveBudgetLine(c *fiber.Ctx) error {
	project, err := h.uc.RemoveBudgetLine(c.Context(), c.Params("id"), c.Params("materialId"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToProjectResponse(project))
}

// UpdateActual godoc
// @Summary      Replantear la cantidad real de una línea (sin tocar reservas)
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id          path  string  true  "ID del proyecto"
// @Param        materialId  path  string  true  "ID del material"
// @Param        body        body  dto.UpdateActualRequest  true  "actual_quantity >= 0"
// @Success      200  {object}  dto.ProjectResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/materials/{materialId} [put]
func (h *ProjectHandler) UpdateActual(c *fiber.Ctx) error {
	var in dto.UpdateActualRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	project, err := h.uc.UpdateActualQuantity(c.Context(), c.Params("id"), c.Params("materialId"), in.ActualQuantity)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToProjectResponse(project))
}

// Complete godoc
// @Summary      Finalizar una obra (liquida reservas contra stock)
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del proyecto"
// @Param        body  body  dto.CompleteProjectRequest  true  "cantidades reales finales por material"
// @Success      200   {object}  dto.ProjectResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/complete [post]
func (h *ProjectHandler) Complete(c *fiber.Ctx) error {
	var in dto.CompleteProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	final := make([]ledger.FinalMaterialInput, 0, len(in.Materials))
	for _, m := range in.Materials {
		final = append(final, ledger.FinalMaterialInput{MaterialID: m.MaterialID, ActualQuantity: m.ActualQuantity})
	}
	project, err := h.uc.CompleteProject(c.Context(), c.Params("id"), final)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToProjectResponse(project))
}
