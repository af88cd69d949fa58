package model

// Topology groups network resources by kind for visualization.
type Topology struct {
	VPCs          []VPC          `json:"vpcs"`
	Subnets       []Subnet       `json:"subnets"`
	NATGateways   []NATGateway   `json:"nat_gateways"`
	LoadBalancers []LoadBalancer `json:"load_balancers"`
	Connections   []Record       `json:"connections"`
}

// Size returns the number of nodes in the topology.
func (t Topology) Size() int {
	return len(t.VPCs) + len(t.Subnets) + len(t.NATGateways) + len(t.LoadBalancers)
}

type VPC struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Region    string `json:"region"`
	CIDRBlock string `json:"cidr_block"`
	Status    string `json:"status"`
}

type Subnet struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	VPCID     string `json:"vpc_id"`
	CIDRBlock string `json:"cidr_block"`
	Zone      string `json:"zone"`
}

type NATGateway struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	SubnetID string `json:"subnet_id"`
	Status   string `json:"status"`
}

type LoadBalancer struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Status string `json:"status"`
}
