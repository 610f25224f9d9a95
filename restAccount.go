package kucoin

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/xiaolo66/kucoin/utils"
)

func (e *Rest) FetchAccounts() (accounts []Account, err error) {
	res, err := e.Fetch(Private, GET, "accounts", url.Values{}, http.Header{})
	if err != nil {
		return
	}

	var data []AccountData
	if err = restJson.Unmarshal(res, &data); err != nil {
		err = RequestError{Message: err.Error()}
		return
	}
	for _, a := range data {
		accounts = append(accounts, a.parseAccount())
	}
	return
}

func (e *Rest) FetchAccount(accountID string) (account Account, err error) {
	res, err := e.Fetch(Private, GET, "accounts/"+accountID, url.Values{}, http.Header{})
	if err != nil {
		return
	}

	var data AccountData
	if err = restJson.Unmarshal(res, &data); err != nil {
		err = RequestError{Message: err.Error()}
		return
	}
	account = data.parseAccount()
	return
}

// FetchBalance : trade account balances keyed by asset
func (e *Rest) FetchBalance() (balances map[string]Balance, err error) {
	accounts, err := e.FetchAccounts()
	if err != nil {
		return
	}
	balances = make(map[string]Balance)
	for _, account := range accounts {
		if account.Type != AccountTrade {
			continue
		}
		balances[account.Currency] = Balance{
			Asset:     account.Currency,
			Available: account.Available,
			Frozen:    account.Holds,
		}
	}
	return
}

func (e *Rest) CreateAccount(accountType AccountType, currency string) (accountID string, err error) {
	params := url.Values{}
	params.Set("type", string(accountType))
	params.Set("currency", currency)
	res, err := e.Fetch(Private, POST, "accounts", params, http.Header{})
	if err != nil {
		return
	}

	var data struct {
		ID string `json:"id"`
	}
	if err = restJson.Unmarshal(res, &data); err != nil {
		err = RequestError{Message: err.Error()}
		return
	}
	accountID = data.ID
	return
}

func (e *Rest) FetchAccountActivity(accountID string, startAt, endAt int64, pageIndex, pageSize int) ([]byte, error) {
	params := url.Values{}
	if startAt > 0 {
		params.Set("startAt", strconv.FormatInt(startAt, 10))
	}
	if endAt > 0 {
		params.Set("endAt", strconv.FormatInt(endAt, 10))
	}
	if pageIndex > 0 {
		params.Set("currentPage", strconv.Itoa(pageIndex))
	}
	if pageSize > 0 {
		params.Set("pageSize", strconv.Itoa(pageSize))
	}
	return e.Fetch(Private, GET, "accounts/"+accountID+"/ledgers", params, http.Header{})
}

func (e *Rest) FetchAccountHolds(accountID string, pageIndex, pageSize int) ([]byte, error) {
	params := url.Values{}
	if pageIndex > 0 {
		params.Set("currentPage", strconv.Itoa(pageIndex))
	}
	if pageSize > 0 {
		params.Set("pageSize", strconv.Itoa(pageSize))
	}
	return e.Fetch(Private, GET, "accounts/"+accountID+"/holds", params, http.Header{})
}

// CreateInnerTransfer : move funds between own accounts, orderID is generated
// when empty
func (e *Rest) CreateInnerTransfer(fromAccountID, toAccountID string, amount float64, orderID string) (err error) {
	params := url.Values{}
	params.Set("payAccountId", fromAccountID)
	params.Set("recAccountId", toAccountID)
	params.Set("amount", strconv.FormatFloat(amount, 'f', -1, 64))
	if orderID == "" {
		orderID = utils.FlatUUID()
	}
	params.Set("clientOid", orderID)
	_, err = e.Fetch(Private, POST, "accounts/inner-transfer", params, http.Header{})
	return
}

func (e *Rest) CreateDepositAddress(currency string) (address DepositAddress, err error) {
	params := url.Values{}
	params.Set("currency", currency)
	res, err := e.Fetch(Private, POST, "deposit-addresses", params, http.Header{})
	if err != nil {
		return
	}

	var data DepositAddressData
	if err = restJson.Unmarshal(res, &data); err != nil {
		err = RequestError{Message: err.Error()}
		return
	}
	address = data.parseDepositAddress()
	return
}

func (e *Rest) FetchDepositAddress(currency string) (address DepositAddress, err error) {
	params := url.Values{}
	params.Set("currency", currency)
	res, err := e.Fetch(Private, GET, "deposit-addresses", params, http.Header{})
	if err != nil {
		return
	}

	var data DepositAddressData
	if err = restJson.Unmarshal(res, &data); err != nil {
		err = RequestError{Message: err.Error()}
		return
	}
	address = data.parseDepositAddress()
	return
}

func (e *Rest) FetchDeposits(currency, status string, pageIndex, pageSize int) (deposits []Deposit, err error) {
	params := url.Values{}
	if currency != "" {
		params.Set("currency", currency)
	}
	if status != "" {
		params.Set("status", status)
	}
	if pageIndex > 0 {
		params.Set("page", strconv.Itoa(pageIndex))
	}
	if pageSize > 0 {
		params.Set("pageSize", strconv.Itoa(pageSize))
	}
	res, err := e.Fetch(Private, GET, "deposits", params, http.Header{})
	if err != nil {
		return
	}

	var data DepositListData
	if err = restJson.Unmarshal(res, &data); err != nil {
		err = RequestError{Message: err.Error()}
		return
	}
	for _, d := range data.Items {
		deposits = append(deposits, d.parseDeposit())
	}
	return
}

func (e *Rest) FetchWithdrawals(currency, status string, pageIndex, pageSize int) (withdrawals []Withdrawal, err error) {
	params := url.Values{}
	if currency != "" {
		params.Set("currency", currency)
	}
	if status != "" {
		params.Set("status", status)
	}
	if pageIndex > 0 {
		params.Set("page", strconv.Itoa(pageIndex))
	}
	if pageSize > 0 {
		params.Set("pageSize", strconv.Itoa(pageSize))
	}
	res, err := e.Fetch(Private, GET, "withdrawals", params, http.Header{})
	if err != nil {
		return
	}

	var data WithdrawalListData
	if err = restJson.Unmarshal(res, &data); err != nil {
		err = RequestError{Message: err.Error()}
		return
	}
	for _, w := range data.Items {
		withdrawals = append(withdrawals, w.parseWithdrawal())
	}
	return
}

func (e *Rest) FetchWithdrawalQuotas(currency string) (quota WithdrawalQuota, err error) {
	params := url.Values{}
	params.Set("currency", currency)
	res, err := e.Fetch(Private, GET, "withdrawals/quotas", params, http.Header{})
	if err != nil {
		return
	}

	var data WithdrawalQuotaData
	if err = restJson.Unmarshal(res, &data); err != nil {
		err = RequestError{Message: err.Error()}
		return
	}
	quota = data.parseWithdrawalQuota()
	return
}

func (e *Rest) CreateWithdrawal(currency string, amount float64, address, memo, remark string, isInner bool) (withdrawalID string, err error) {
	params := url.Values{}
	params.Set("currency", currency)
	params.Set("amount", strconv.FormatFloat(amount, 'f', -1, 64))
	params.Set("address", address)
	if memo != "" {
		params.Set("memo", memo)
	}
	if isInner {
		params.Set("isInner", "true")
	}
	if remark != "" {
		params.Set("remark", remark)
	}
	res, err := e.Fetch(Private, POST, "withdrawals", params, http.Header{})
	if err != nil {
		return
	}

	var data struct {
		WithdrawalID string `json:"withdrawalId"`
	}
	if err = restJson.Unmarshal(res, &data); err != nil {
		err = RequestError{Message: err.Error()}
		return
	}
	withdrawalID = data.WithdrawalID
	return
}

func (e *Rest) CancelWithdrawal(withdrawalID string) error {
	_, err := e.Fetch(Private, DELETE, "withdrawals/"+withdrawalID, url.Values{}, http.Header{})
	return err
}

// FetchLendingOrderBook : lending market data of a currency
func (e *Rest) FetchLendingOrderBook(currency string) ([]byte, error) {
	params := url.Values{}
	params.Set("currency", currency)
	return e.Fetch(Public, GET, "margin/market", params, http.Header{})
}

func (e *Rest) CreateLendingOrder(currency string, size, dailyIntRate float64, term int) (orderID string, err error) {
	params := url.Values{}
	params.Set("currency", currency)
	params.Set("size", strconv.FormatFloat(size, 'f', -1, 64))
	params.Set("dailyIntRate", strconv.FormatFloat(dailyIntRate, 'f', -1, 64))
	params.Set("term", strconv.Itoa(term))
	res, err := e.Fetch(Private, POST, "margin/lend", params, http.Header{})
	if err != nil {
		return
	}

	var data struct {
		OrderID string `json:"orderId"`
	}
	if err = restJson.Unmarshal(res, &data); err != nil {
		err = RequestError{Message: err.Error()}
		return
	}
	orderID = data.OrderID
	return
}

func (e *Rest) FetchLendingOrders(currency string) (orders []LendOrder, err error) {
	params := url.Values{}
	params.Set("currency", currency)
	res, err := e.Fetch(Private, GET, "margin/lend/active", params, http.Header{})
	if err != nil {
		return
	}

	var data struct {
		Pagination
		Items []LendOrderData `json:"items"`
	}
	if err = restJson.Unmarshal(res, &data); err != nil {
		err = RequestError{Message: err.Error()}
		return
	}
	for _, l := range data.Items {
		orders = append(orders, l.parseLendOrder())
	}
	return
}

func (e *Rest) CancelLendOrder(orderID string) error {
	_, err := e.Fetch(Private, DELETE, "margin/lend/"+orderID, url.Values{}, http.Header{})
	return err
}
