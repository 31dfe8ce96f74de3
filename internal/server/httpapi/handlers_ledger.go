package httpapi

import (
	"strconv"

	"github.com/dmitrijs2005/duoledger/internal/common"
	"github.com/dmitrijs2005/duoledger/internal/server/models"
	"github.com/dmitrijs2005/duoledger/internal/server/services"
	"github.com/gofiber/fiber/v2"
)

type paginationView struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// queryInt reads an optional integer query parameter. Absent means 0.
func queryInt(c *fiber.Ctx, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, common.ErrorValidation
	}
	return n, nil
}

func (s *Server) createAccount(c *fiber.Ctx) error {
	cl, err := claimsFrom(c)
	if err != nil {
		return err
	}
	var req accountRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	a, err := s.deps.Ledger.CreateAccount(c.UserContext(), cl.UserID, services.AccountInput{
		Name:    req.Name,
		Type:    models.AccountType(req.Type),
		Balance: req.Balance,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"account": a})
}

func (s *Server) listAccounts(c *fiber.Ctx) error {
	cl, err := claimsFrom(c)
	if err != nil {
		return err
	}
	list, err := s.deps.Ledger.ListAccounts(c.UserContext(), cl.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"accounts": list.Accounts, "totalBalance": list.TotalBalance})
}

func (s *Server) createTransaction(c *fiber.Ctx) error {
	cl, err := claimsFrom(c)
	if err != nil {
		return err
	}
	var req transactionRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	t, err := s.deps.Ledger.CreateTransaction(c.UserContext(), cl.UserID, services.TransactionInput{
		AccountID:   req.AccountID,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Type:        models.TransactionType(req.Type),
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"transaction": t})
}

func (s *Server) listTransactions(c *fiber.Ctx) error {
	cl, err := claimsFrom(c)
	if err != nil {
		return err
	}
	page, err := queryInt(c, "page")
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}
	res, err := s.deps.Ledger.ListTransactions(c.UserContext(), cl.UserID, services.TransactionQuery{
		AccountID: c.Query("accountId"),
		Type:      models.TransactionType(c.Query("type")),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"transactions": res.Items,
		"pagination":   paginationView{Page: res.Page, Limit: res.Limit, Total: res.Total, Pages: res.Pages},
	})
}

func (s *Server) listCategories(c *fiber.Ctx) error {
	cats, err := s.deps.Ledger.ListCategories(c.UserContext(), models.TransactionType(c.Query("type")))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"categories": cats})
}
