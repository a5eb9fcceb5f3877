// Copyright 2023 Canonical Ltd.

package hubhttp_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/canonical/rhub/api/params"
	"github.com/canonical/rhub/internal/db"
	"github.com/canonical/rhub/internal/dbmodel"
	"github.com/canonical/rhub/internal/hub"
	"github.com/canonical/rhub/internal/hubhttp"
	"github.com/canonical/rhub/internal/hubtest"
)

func i64(v int64) *int64 {
	return &v
}

type apiTest struct {
	srv *httptest.Server

	usersGroupID uint
	prod1ID      uint
	prod2ID      uint
	productID    uint
}

// newAPITest starts an API server backed by a fresh database populated
// with an administrator "admin", a user "carol" in no group, a shared
// region prod-01, a region prod-02 restricted to the lab-users group and
// one product available in prod-02.
func newAPITest(c *qt.C) *apiTest {
	ctx := context.Background()
	database := &db.Database{DB: hubtest.MemoryDB(c, nil)}
	c.Assert(database.Migrate(ctx, false), qt.IsNil)

	var t apiTest

	ownerGroup := dbmodel.Group{Name: "lab-owners"}
	c.Assert(database.AddGroup(ctx, &ownerGroup), qt.IsNil)
	usersGroup := dbmodel.Group{Name: "lab-users"}
	c.Assert(database.AddGroup(ctx, &usersGroup), qt.IsNil)
	t.usersGroupID = usersGroup.ID

	admin := dbmodel.User{Name: "admin", Admin: true}
	c.Assert(database.AddUser(ctx, &admin), qt.IsNil)
	carol := dbmodel.User{Name: "carol"}
	c.Assert(database.AddUser(ctx, &carol), qt.IsNil)

	prod1 := dbmodel.Region{
		Name:                 "prod-01",
		Enabled:              true,
		OwnerGroupID:         ownerGroup.ID,
		ProvisioningServerID: 1,
		CloudID:              1,
	}
	c.Assert(database.AddRegion(ctx, &prod1), qt.IsNil)
	t.prod1ID = prod1.ID

	prod2 := dbmodel.Region{
		Name:                 "prod-02",
		Enabled:              true,
		OwnerGroupID:         ownerGroup.ID,
		UsersGroupID:         &usersGroup.ID,
		ProvisioningServerID: 1,
		CloudID:              1,
		TotalQuota:           &dbmodel.Quota{NumServers: i64(10)},
	}
	c.Assert(database.AddRegion(ctx, &prod2), qt.IsNil)
	t.prod2ID = prod2.ID

	product := dbmodel.Product{Name: "virt-cluster", Enabled: true}
	c.Assert(database.AddProduct(ctx, &product), qt.IsNil)
	c.Assert(database.UpsertRegionProduct(ctx, prod2.ID, product.ID, nil), qt.IsNil)
	t.productID = product.ID

	handler := hubhttp.Handler{
		Hub: &hub.Hub{Database: database},
	}
	t.srv = httptest.NewServer(handler.Routes())
	c.Cleanup(t.srv.Close)
	return &t
}

// do performs a request against the test server as the given user and
// decodes the JSON response body into resp, if it is non-nil.
func (t *apiTest) do(c *qt.C, user, method, path, body string, resp interface{}) *http.Response {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, t.srv.URL+path, reader)
	c.Assert(err, qt.IsNil)
	if user != "" {
		req.Header.Set(hubhttp.UserHeader, user)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	httpResp, err := http.DefaultClient.Do(req)
	c.Assert(err, qt.IsNil)
	defer httpResp.Body.Close()
	if resp != nil {
		err = json.NewDecoder(httpResp.Body).Decode(resp)
		c.Assert(err, qt.IsNil)
	}
	return httpResp
}

func TestAuthentication(t *testing.T) {
	c := qt.New(t)
	test := newAPITest(c)

	var apiErr params.Error
	resp := test.do(c, "", "GET", "/regions", "", &apiErr)
	c.Check(resp.StatusCode, qt.Equals, http.StatusForbidden)
	c.Check(apiErr.Message, qt.Equals, "no user identity provided")

	apiErr = params.Error{}
	resp = test.do(c, "mallory", "GET", "/regions", "", &apiErr)
	c.Check(resp.StatusCode, qt.Equals, http.StatusForbidden)
	c.Check(apiErr.Message, qt.Equals, "unknown user")
}

func TestListRegionsHTTP(t *testing.T) {
	c := qt.New(t)
	test := newAPITest(c)

	var list params.ListRegionsResponse
	resp := test.do(c, "admin", "GET", "/regions", "", &list)
	c.Check(resp.StatusCode, qt.Equals, http.StatusOK)
	c.Check(list.Total, qt.Equals, int64(2))
	c.Check(list.Data, qt.HasLen, 2)

	// carol is in no group and only sees the shared region.
	list = params.ListRegionsResponse{}
	resp = test.do(c, "carol", "GET", "/regions", "", &list)
	c.Check(resp.StatusCode, qt.Equals, http.StatusOK)
	c.Check(list.Total, qt.Equals, int64(1))
	c.Check(list.Data[0].Name, qt.Equals, "prod-01")

	q := url.Values{
		"name":  {"prod%"},
		"sort":  {"-name"},
		"limit": {"1"},
	}
	list = params.ListRegionsResponse{}
	resp = test.do(c, "admin", "GET", "/regions?"+q.Encode(), "", &list)
	c.Check(resp.StatusCode, qt.Equals, http.StatusOK)
	c.Check(list.Total, qt.Equals, int64(2))
	c.Assert(list.Data, qt.HasLen, 1)
	c.Check(list.Data[0].Name, qt.Equals, "prod-02")

	var apiErr params.Error
	resp = test.do(c, "admin", "GET", "/regions?sort=size", "", &apiErr)
	c.Check(resp.StatusCode, qt.Equals, http.StatusBadRequest)
	c.Check(apiErr.Message, qt.Equals, `unknown sort field "size"`)

	resp = test.do(c, "admin", "GET", "/regions?enabled=maybe", "", nil)
	c.Check(resp.StatusCode, qt.Equals, http.StatusBadRequest)
}

func TestRegionLifecycleHTTP(t *testing.T) {
	c := qt.New(t)
	test := newAPITest(c)

	var region params.Region
	resp := test.do(c, "admin", "POST", "/regions", `{
		"name": "prod-03",
		"owner_group_id": 1,
		"provisioning_server_id": 1,
		"cloud_id": 1,
		"total_quota": {"num_servers": 5}
	}`, &region)
	c.Check(resp.StatusCode, qt.Equals, http.StatusCreated)
	c.Check(region.Name, qt.Equals, "prod-03")
	c.Check(region.Enabled, qt.IsTrue)
	c.Check(region.TotalQuota["num_servers"], qt.DeepEquals, i64(5))

	var apiErr params.Error
	resp = test.do(c, "admin", "POST", "/regions", `{
		"name": "prod-03",
		"owner_group_id": 1,
		"provisioning_server_id": 1,
		"cloud_id": 1
	}`, &apiErr)
	c.Check(resp.StatusCode, qt.Equals, http.StatusConflict)

	updated := params.Region{}
	resp = test.do(c, "admin", "PATCH", "/regions/"+itoa(region.ID), `{"enabled": false}`, &updated)
	c.Check(resp.StatusCode, qt.Equals, http.StatusOK)
	c.Check(updated.Enabled, qt.IsFalse)
	c.Check(updated.Name, qt.Equals, "prod-03")

	resp = test.do(c, "admin", "DELETE", "/regions/"+itoa(region.ID), "", nil)
	c.Check(resp.StatusCode, qt.Equals, http.StatusNoContent)

	resp = test.do(c, "admin", "GET", "/regions/"+itoa(region.ID), "", nil)
	c.Check(resp.StatusCode, qt.Equals, http.StatusNotFound)
}

func TestGetRegionHTTP(t *testing.T) {
	c := qt.New(t)
	test := newAPITest(c)

	var region params.Region
	resp := test.do(c, "carol", "GET", "/regions/"+itoa(test.prod1ID), "", &region)
	c.Check(resp.StatusCode, qt.Equals, http.StatusOK)
	c.Check(region.Name, qt.Equals, "prod-01")

	var apiErr params.Error
	resp = test.do(c, "carol", "GET", "/regions/"+itoa(test.prod2ID), "", &apiErr)
	c.Check(resp.StatusCode, qt.Equals, http.StatusForbidden)
	c.Check(apiErr.Message, qt.Equals, "you don't have access to this region")

	// A missing region is reported as not found even to users that could
	// not have read it.
	apiErr = params.Error{}
	resp = test.do(c, "carol", "GET", "/regions/999", "", &apiErr)
	c.Check(resp.StatusCode, qt.Equals, http.StatusNotFound)
	c.Check(apiErr.Message, qt.Equals, "region 999 does not exist")

	resp = test.do(c, "admin", "GET", "/regions/abc", "", nil)
	c.Check(resp.StatusCode, qt.Equals, http.StatusBadRequest)
}

func TestRegionProductsHTTP(t *testing.T) {
	c := qt.New(t)
	test := newAPITest(c)

	var products []params.RegionProduct
	resp := test.do(c, "admin", "GET", "/regions/"+itoa(test.prod2ID)+"/products", "", &products)
	c.Check(resp.StatusCode, qt.Equals, http.StatusOK)
	c.Assert(products, qt.HasLen, 1)
	c.Check(products[0].Product.Name, qt.Equals, "virt-cluster")
	c.Check(products[0].Enabled, qt.IsTrue)

	resp = test.do(c, "admin", "POST", "/regions/"+itoa(test.prod2ID)+"/products",
		`{"id": `+itoa(test.productID)+`, "enabled": false}`, nil)
	c.Check(resp.StatusCode, qt.Equals, http.StatusNoContent)

	products = nil
	resp = test.do(c, "admin", "GET", "/regions/"+itoa(test.prod2ID)+"/products", "", &products)
	c.Check(resp.StatusCode, qt.Equals, http.StatusOK)
	c.Assert(products, qt.HasLen, 1)
	c.Check(products[0].Enabled, qt.IsFalse)

	resp = test.do(c, "admin", "DELETE", "/regions/"+itoa(test.prod2ID)+"/products",
		`{"id": `+itoa(test.productID)+`}`, nil)
	c.Check(resp.StatusCode, qt.Equals, http.StatusNoContent)

	products = nil
	resp = test.do(c, "admin", "GET", "/regions/"+itoa(test.prod2ID)+"/products", "", &products)
	c.Check(resp.StatusCode, qt.Equals, http.StatusOK)
	c.Check(products, qt.HasLen, 0)
}

func TestRegionUsageHTTP(t *testing.T) {
	c := qt.New(t)
	test := newAPITest(c)

	var view params.UsageView
	resp := test.do(c, "admin", "GET", "/regions/"+itoa(test.prod2ID)+"/usage", "", &view)
	c.Check(resp.StatusCode, qt.Equals, http.StatusOK)
	c.Check(view.TotalQuota["num_servers"], qt.DeepEquals, i64(10))

	var usage map[string]params.UsageView
	resp = test.do(c, "admin", "GET", "/regions/usage", "", &usage)
	c.Check(resp.StatusCode, qt.Equals, http.StatusOK)
	c.Check(usage, qt.HasLen, 3)
	c.Check(usage["all"].TotalQuota["num_servers"], qt.DeepEquals, i64(10))
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
