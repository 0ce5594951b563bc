package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/techagentng/cityalert/errors"
	"github.com/techagentng/cityalert/models"
	"github.com/techagentng/cityalert/server/response"
)

func (s *Server) handleCreateQuiz() gin.HandlerFunc {
	return func(c *gin.Context) {
		var quiz models.MissionQuiz
		if err := c.ShouldBindJSON(&quiz); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		if err := s.MissionService.CreateQuiz(&quiz); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "quiz created", http.StatusCreated, quiz, nil)
	}
}

func (s *Server) handleGetQuizzes() gin.HandlerFunc {
	return func(c *gin.Context) {
		quizzes, err := s.MissionService.GetAllQuizzes()
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, quizzes, nil)
	}
}

func (s *Server) handleUpdateQuiz() gin.HandlerFunc {
	return func(c *gin.Context) {
		quizID, err := uintParam(c, "quizID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		var quiz models.MissionQuiz
		if err := c.ShouldBindJSON(&quiz); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		quiz.ID = quizID
		if err := s.MissionService.UpdateQuiz(&quiz); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "quiz updated", http.StatusOK, quiz, nil)
	}
}

func (s *Server) handleDeleteQuiz() gin.HandlerFunc {
	return func(c *gin.Context) {
		quizID, err := uintParam(c, "quizID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		if err := s.MissionService.DeleteQuiz(quizID); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "quiz deleted", http.StatusOK, nil, nil)
	}
}

// handleAnswerQuiz awards the quiz coins on a correct answer; a wrong answer
// is a normal response, not an error.
func (s *Server) handleAnswerQuiz() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID")
		quizID, err := uintParam(c, "quizID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		var answer models.QuizAnswerRequest
		if err := c.ShouldBindJSON(&answer); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		correct, coins, serviceErr := s.MissionService.AnswerQuiz(userID, quizID, answer.Option)
		if serviceErr != nil {
			response.HandleErrors(c, serviceErr)
			return
		}
		if !correct {
			response.JSON(c, "wrong answer", http.StatusOK, gin.H{"correct": false, "coins": 0}, nil)
			return
		}
		response.JSON(c, "correct answer", http.StatusOK, gin.H{"correct": true, "coins": coins}, nil)
	}
}

func (s *Server) handleCreateAction() gin.HandlerFunc {
	return func(c *gin.Context) {
		var action models.MissionAction
		if err := c.ShouldBindJSON(&action); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		if err := s.MissionService.CreateAction(&action); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "mission created", http.StatusCreated, action, nil)
	}
}

func (s *Server) handleGetActions() gin.HandlerFunc {
	return func(c *gin.Context) {
		actions, err := s.MissionService.GetAllActions()
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, actions, nil)
	}
}

func (s *Server) handleUpdateAction() gin.HandlerFunc {
	return func(c *gin.Context) {
		actionID, err := uintParam(c, "actionID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		var action models.MissionAction
		if err := c.ShouldBindJSON(&action); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		action.ID = actionID
		if err := s.MissionService.UpdateAction(&action); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "mission updated", http.StatusOK, action, nil)
	}
}

func (s *Server) handleDeleteAction() gin.HandlerFunc {
	return func(c *gin.Context) {
		actionID, err := uintParam(c, "actionID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		if err := s.MissionService.DeleteAction(actionID); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "mission deleted", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleCompleteAction() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID")
		actionID, err := uintParam(c, "actionID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		completion, serviceErr := s.MissionService.CompleteAction(userID, actionID)
		if serviceErr != nil {
			response.HandleErrors(c, serviceErr)
			return
		}
		response.JSON(c, "mission completed", http.StatusCreated, completion, nil)
	}
}

func (s *Server) handleCreatePaparazzi() gin.HandlerFunc {
	return func(c *gin.Context) {
		var mission models.MissionPaparazzi
		if err := c.ShouldBindJSON(&mission); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		if err := s.MissionService.CreatePaparazzi(&mission); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "mission created", http.StatusCreated, mission, nil)
	}
}

func (s *Server) handleGetPaparazzi() gin.HandlerFunc {
	return func(c *gin.Context) {
		missions, err := s.MissionService.GetAllPaparazzi()
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, missions, nil)
	}
}

func (s *Server) handleDeletePaparazzi() gin.HandlerFunc {
	return func(c *gin.Context) {
		missionID, err := uintParam(c, "missionID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		if err := s.MissionService.DeletePaparazzi(missionID); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "mission deleted", http.StatusOK, nil, nil)
	}
}

// handleSubmitPaparazzi stores the photo submission as pending moderation
func (s *Server) handleSubmitPaparazzi() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID")
		missionID, err := uintParam(c, "missionID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}

		if err := c.Request.ParseMultipartForm(10 << 20); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		text := c.PostForm("text")
		_, fileHeader, fileErr := c.Request.FormFile("photo")
		if fileErr != nil {
			response.JSON(c, "photo is required", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}

		completion, serviceErr := s.MissionService.SubmitPaparazzi(userID, missionID, text, fileHeader)
		if serviceErr != nil {
			response.HandleErrors(c, serviceErr)
			return
		}
		response.JSON(c, "submission received, awaiting moderation", http.StatusCreated, completion, nil)
	}
}

func (s *Server) handleUpdatePaparazziStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		uniqueID := c.Param("uniqueID")
		var request models.PaparazziStatusRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		if err := s.MissionService.UpdatePaparazziStatus(uniqueID, request.Status); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "submission status updated", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleGetPaparazziCompletions() gin.HandlerFunc {
	return func(c *gin.Context) {
		completions, err := s.MissionService.GetPaparazziCompletions()
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, completions, nil)
	}
}

func (s *Server) handleGetActionCompletions() gin.HandlerFunc {
	return func(c *gin.Context) {
		completions, err := s.MissionService.GetActionCompletions()
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, completions, nil)
	}
}

func (s *Server) handleToggleCampaign() gin.HandlerFunc {
	return func(c *gin.Context) {
		campaignID, err := uintParam(c, "campaignID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		campaign, serviceErr := s.MissionService.ToggleCampaign(campaignID)
		if serviceErr != nil {
			response.HandleErrors(c, serviceErr)
			return
		}
		response.JSON(c, "campaign updated", http.StatusOK, campaign, nil)
	}
}
