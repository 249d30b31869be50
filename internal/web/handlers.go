package web

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/runoshun/editflow/internal/domain"
	"github.com/runoshun/editflow/internal/usecase"
)

var errBadRequest = errors.New("bad request")

// writeError maps err to a status code: missing documents 404, bad input 400, anything else 500.
func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case domain.IsNotFound(err):
		status = http.StatusNotFound
	case domain.IsValidationError(err), errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	default:
		s.log.Error().Str("mod", mod).Err(err).Str("path", c.Request.URL.Path).Send()
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *Server) bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		s.writeError(c, errors.Join(errBadRequest, err))
		return false
	}
	return true
}

// monthQuery parses ?month=YYYY-MM; empty means the current month.
func monthQuery(c *gin.Context) (domain.MonthKey, error) {
	raw := c.Query("month")
	if raw == "" {
		return "", nil
	}
	return domain.ParseMonthKey(raw)
}

// === Tasks ===

type taskRequest struct {
	Show      *string `json:"show"`
	Episode   *string `json:"episode"`
	Editor    *string `json:"editor"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
	Note      *string `json:"note"`
}

func (r taskRequest) input(id string) usecase.SaveTaskInput {
	return usecase.SaveTaskInput{
		ID:        id,
		Show:      r.Show,
		Episode:   r.Episode,
		Editor:    r.Editor,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Note:      r.Note,
	}
}

func (s *Server) listTasks(c *gin.Context) {
	month, err := monthQuery(c)
	if err != nil {
		s.writeError(c, err)
		return
	}
	out, err := s.container.ListTasksUseCase().Execute(c.Request.Context(), usecase.ListTasksInput{
		Filter: domain.TaskFilter{
			Editor: c.Query("editor"),
			Show:   c.Query("show"),
			Month:  month,
		},
		Status: domain.TaskStatus(c.Query("status")),
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	items := make([]taskJSON, 0, len(out.Items))
	for _, item := range out.Items {
		items = append(items, newTaskJSON(item.Task, item.Status))
	}
	c.JSON(http.StatusOK, gin.H{"tasks": items})
}

func (s *Server) createTask(c *gin.Context) {
	var req taskRequest
	if !s.bindJSON(c, &req) {
		return
	}
	out, err := s.container.SaveTaskUseCase().Execute(c.Request.Context(), req.input(""))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTaskJSON(out.Task, domain.ClassifyStatus(out.Task, s.container.Clock.Now())))
}

func (s *Server) getTask(c *gin.Context) {
	out, err := s.container.ShowTaskUseCase().Execute(c.Request.Context(), usecase.ShowTaskInput{ID: c.Param("id")})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskJSON(out.Task, out.Status))
}

func (s *Server) updateTask(c *gin.Context) {
	var req taskRequest
	if !s.bindJSON(c, &req) {
		return
	}
	out, err := s.container.SaveTaskUseCase().Execute(c.Request.Context(), req.input(c.Param("id")))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskJSON(out.Task, domain.ClassifyStatus(out.Task, s.container.Clock.Now())))
}

func (s *Server) deleteTask(c *gin.Context) {
	if _, err := s.container.DeleteTaskUseCase().Execute(c.Request.Context(), usecase.DeleteTaskInput{ID: c.Param("id")}); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) getTaskStatus(c *gin.Context) {
	out, err := s.container.ShowTaskUseCase().Execute(c.Request.Context(), usecase.ShowTaskInput{ID: c.Param("id")})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": out.Task.ID, "status": out.Status})
}

// === Programs ===

type programRequest struct {
	Name        *string `json:"name"`
	Duration    *string `json:"duration"`
	PremiereDay *string `json:"premiereDay"`
	WorkDays    *int    `json:"workDays"`
}

func (r programRequest) input(id string) usecase.SaveProgramInput {
	return usecase.SaveProgramInput{
		ID:          id,
		Name:        r.Name,
		Duration:    r.Duration,
		PremiereDay: r.PremiereDay,
		WorkDays:    r.WorkDays,
	}
}

func (s *Server) listPrograms(c *gin.Context) {
	programs, err := s.container.ListProgramsUseCase().Execute(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"programs": programs})
}

func (s *Server) createProgram(c *gin.Context) {
	var req programRequest
	if !s.bindJSON(c, &req) {
		return
	}
	out, err := s.container.SaveProgramUseCase().Execute(c.Request.Context(), req.input(""))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out.Program)
}

func (s *Server) getProgram(c *gin.Context) {
	program, err := s.container.Store.GetProgram(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, program)
}

func (s *Server) updateProgram(c *gin.Context) {
	var req programRequest
	if !s.bindJSON(c, &req) {
		return
	}
	out, err := s.container.SaveProgramUseCase().Execute(c.Request.Context(), req.input(c.Param("id")))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out.Program)
}

func (s *Server) deleteProgram(c *gin.Context) {
	if _, err := s.container.DeleteProgramUseCase().Execute(c.Request.Context(), usecase.DeleteProgramInput{ID: c.Param("id")}); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// === Editors ===

type editorRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

func (r editorRequest) input(id string) usecase.SaveEditorInput {
	return usecase.SaveEditorInput{ID: id, Name: r.Name, Color: r.Color}
}

func (s *Server) listEditors(c *gin.Context) {
	editors, err := s.container.ListEditorsUseCase().Execute(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"editors": editors})
}

func (s *Server) createEditor(c *gin.Context) {
	var req editorRequest
	if !s.bindJSON(c, &req) {
		return
	}
	out, err := s.container.SaveEditorUseCase().Execute(c.Request.Context(), req.input(""))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out.Editor)
}

func (s *Server) getEditor(c *gin.Context) {
	editor, err := s.container.Store.GetEditor(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, editor)
}

func (s *Server) updateEditor(c *gin.Context) {
	var req editorRequest
	if !s.bindJSON(c, &req) {
		return
	}
	out, err := s.container.SaveEditorUseCase().Execute(c.Request.Context(), req.input(c.Param("id")))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out.Editor)
}

func (s *Server) deleteEditor(c *gin.Context) {
	if _, err := s.container.DeleteEditorUseCase().Execute(c.Request.Context(), usecase.DeleteEditorInput{ID: c.Param("id")}); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// === Views ===

func (s *Server) getLayout(c *gin.Context) {
	board, err := s.container.LoadBoardUseCase().Execute(c.Request.Context(), usecase.LoadBoardInput{
		Options: s.container.Settings.StatsOptions(),
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newLayoutJSON(board))
}

func (s *Server) getCalendar(c *gin.Context) {
	month, err := monthQuery(c)
	if err != nil {
		s.writeError(c, err)
		return
	}
	cal, err := s.container.BuildCalendarUseCase().Execute(c.Request.Context(), usecase.BuildCalendarInput{
		Month:     month,
		WeekStart: s.container.WeekStart(),
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCalendarJSON(cal))
}

func (s *Server) getStats(c *gin.Context) {
	month, err := monthQuery(c)
	if err != nil {
		s.writeError(c, err)
		return
	}
	report, err := s.container.ComputeStatsUseCase().Execute(c.Request.Context(), usecase.ComputeStatsInput{
		Month:   month,
		Options: s.container.Settings.StatsOptions(),
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newStatsJSON(report))
}

// streamBoard pushes the layout as a server-sent event for every snapshot until the client leaves.
func (s *Server) streamBoard(c *gin.Context) {
	ctx := c.Request.Context()
	boards := make(chan *domain.Board)
	done := make(chan error, 1)

	go func() {
		done <- s.container.WatchScheduleUseCase().Execute(ctx, usecase.WatchScheduleInput{
			Options: s.container.Settings.StatsOptions(),
			OnBoard: func(b *domain.Board) {
				select {
				case boards <- b:
				case <-ctx.Done():
				}
			},
		})
		close(boards)
	}()

	c.Stream(func(w io.Writer) bool {
		select {
		case b, ok := <-boards:
			if !ok {
				return false
			}
			c.SSEvent("board", newLayoutJSON(b))
			return true
		case <-ctx.Done():
			return false
		}
	})

	if err := <-done; err != nil && ctx.Err() == nil {
		s.log.Warn().Str("mod", mod).Err(err).Msg("board stream ended")
	}
}
