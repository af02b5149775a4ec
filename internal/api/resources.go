// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package api

import (
	"context"
	"net/url"

	apimodel "github.com/gaucho-cli/gaucho/internal/api/model"
)

func (c *Client) Service(ctx context.Context, id string) (*apimodel.Resource, error) {
	var service apimodel.Resource
	if err := c.Get(ctx, c.ServiceURL(id), &service); err != nil {
		return nil, err
	}

	return &service, nil
}

func (c *Client) ServicesByName(ctx context.Context, name string) ([]apimodel.Resource, error) {
	var services apimodel.Collection[apimodel.Resource]
	if err := c.Get(ctx, c.host+"/services?name="+url.QueryEscape(name), &services); err != nil {
		return nil, err
	}

	return services.Data, nil
}

// ServiceInstances lists the containers backing a service.
func (c *Client) ServiceInstances(ctx context.Context, id string) ([]apimodel.Container, error) {
	var instances apimodel.Collection[apimodel.Container]
	if err := c.Get(ctx, c.ServiceURL(id)+"/"+apimodel.LinkInstances, &instances); err != nil {
		return nil, err
	}

	return instances.Data, nil
}

func (c *Client) Project(ctx context.Context, id string) (*apimodel.Resource, error) {
	var project apimodel.Resource
	if err := c.Get(ctx, c.ProjectURL(id), &project); err != nil {
		return nil, err
	}

	return &project, nil
}

func (c *Client) Projects(ctx context.Context) ([]apimodel.Resource, error) {
	var projects apimodel.Collection[apimodel.Resource]
	if err := c.Get(ctx, c.ProjectURL(""), &projects); err != nil {
		return nil, err
	}

	return projects.Data, nil
}

// ProjectsByName uses the singular project endpoint, which is the one that
// honours the name filter.
func (c *Client) ProjectsByName(ctx context.Context, name string) ([]apimodel.Resource, error) {
	var projects apimodel.Collection[apimodel.Resource]
	if err := c.Get(ctx, c.host+"/project?name="+url.QueryEscape(name), &projects); err != nil {
		return nil, err
	}

	return projects.Data, nil
}
