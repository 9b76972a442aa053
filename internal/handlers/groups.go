package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jewelmj/splitsmart/internal/service"
	"github.com/jewelmj/splitsmart/internal/split"
)

// groupHandler handles HTTP requests related to groups and their ledgers.
type groupHandler struct {
	groups *service.GroupService
}

func (h *groupHandler) createGroup(c *gin.Context) {
	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	group, err := h.groups.CreateGroup(c.Request.Context(), req.Name, req.MemberIDs)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, group)
}

func (h *groupHandler) getGroup(c *gin.Context) {
	group, err := h.groups.GetGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

func (h *groupHandler) listGroups(c *gin.Context) {
	groups, err := h.groups.ListGroups(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

func (h *groupHandler) addMembers(c *gin.Context) {
	var req AddMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	group, err := h.groups.AddMembers(c.Request.Context(), c.Param("id"), req.MemberIDs)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

func (h *groupHandler) addExpense(c *gin.Context) {
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	spec := split.Equal()
	switch split.Type(strings.ToUpper(req.SplitType)) {
	case split.TypeEqual, "":
	case split.TypePercentage:
		spec = split.Percentage(req.Percentages)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown split_type: " + req.SplitType})
		return
	}

	expense, err := h.groups.AddExpense(c.Request.Context(), c.Param("id"), req.Description, req.Amount, req.PayerID, spec)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (h *groupHandler) debts(c *gin.Context) {
	debts, err := h.groups.Debts(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"debts": debts})
}

func (h *groupHandler) balances(c *gin.Context) {
	balances, err := h.groups.Balances(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balances": balances})
}

func (h *groupHandler) settleUp(c *gin.Context) {
	var req CreateSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	settlement, err := h.groups.SettleUp(c.Request.Context(), c.Param("id"), req.PayerID, req.RecipientID, req.Amount, req.Note)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, settlement)
}

func (h *groupHandler) summary(c *gin.Context) {
	summary, err := h.groups.Summarize(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
