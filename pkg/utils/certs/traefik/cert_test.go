//nolint:lll,funlen // readablity
package traefik

import "testing"

func TestCertFor(t *testing.T) {
	type args struct {
		jsonData string
		domain   string
	}
	tests := []struct {
		name    string
		args    args
		cert    string
		key     string
		wantErr bool
	}{
		{
			name: "Success",
			args: args{
				jsonData: `{"letsencrypt":{"Certificates":[{"domain":{"main":"pitwall.example.com"}, "certificate": "cert1", "key": "key1"}]}}`,
				domain:   "pitwall.example.com",
			},
			cert:    "cert1",
			key:     "key1",
			wantErr: false,
		},
		{
			name: "Wildcard domain",
			args: args{
				jsonData: `{"myresolver":{"Certificates":[{"domain":{"main":"*.example.com"}, "certificate": "cert1", "key": "key1"}]}}`,
				domain:   "*.example.com",
			},
			cert:    "cert1",
			key:     "key1",
			wantErr: false,
		},
		{
			name: "Second resolver",
			args: args{
				jsonData: `{"staging":{"Certificates":[{"domain":{"main":"other.com"}, "certificate": "certX", "key": "keyX"}]},"prod":{"Certificates":[{"domain":{"main":"pitwall.example.com"}, "certificate": "cert2", "key": "key2"}]}}`,
				domain:   "pitwall.example.com",
			},
			cert:    "cert2",
			key:     "key2",
			wantErr: false,
		},
		{
			name: "Domain not found",
			args: args{
				jsonData: `{"letsencrypt":{"Certificates":[{"domain":{"main":"pitwall.example.com"}, "certificate": "cert1", "key": "key1"}]}}`,
				domain:   "notfound.com",
			},
			cert:    "",
			key:     "",
			wantErr: true,
		},
		{
			name: "Empty json",
			args: args{
				jsonData: `{}`,
				domain:   "notfound.com",
			},
			cert:    "",
			key:     "",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, got1, err := certFor(tt.args.jsonData, tt.args.domain)
			if (err != nil) != tt.wantErr {
				t.Errorf("certFor() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.cert {
				t.Errorf("certFor() got = %v, want %v", got, tt.cert)
			}
			if got1 != tt.key {
				t.Errorf("certFor() got1 = %v, want %v", got1, tt.key)
			}
		})
	}
}
