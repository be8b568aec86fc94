package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"os/user"
	"strings"

	"github.com/imroc/req"
	"github.com/inconshreveable/go-update"
	"github.com/manifoldco/promptui"
	"github.com/urfave/cli"
)

type Submission struct {
	DNASequence  string `json:"dnaSequence"`
	DNASequence2 string `json:"dnaSequence2"`
	Email        string `json:"email"`
}

type SubmitResponse struct {
	RequestID string `json:"requestId"`
	State     string `json:"state"`
}

type StatusResponse struct {
	RequestID   string `json:"requestId"`
	State       string `json:"state"`
	FailureKind string `json:"failureKind"`
}

type GithubReleaseResponse struct {
	Url    string `json:"url"`
	Assets []struct {
		Name               string `json:"name"`
		BrowserDownloadUrl string `json:"browser_download_url"`
	}
}

var (
	app           *cli.App
	homeDir       string
	serverAddress string
	sequencePath  string
	sequence2Path string
	email         string
	requestID     string
	version       string
)

func checkForInitValues() (err error) {
	dat, _ := ioutil.ReadFile(homeDir + "/.triplex/TRIPLEX_SERVER_ADDRESS")
	serverAddress = string(dat)
	if len(serverAddress) < 1 {
		errMsg := "triplex-cli need to be configured first. Run: "
		errMsg += "triplex-cli config --server yourtriplexserveraddress"
		err = errors.New(errMsg)
		fmt.Println(err.Error())
	}
	return
}

// readSequence loads a sequence from a file, accepting either a raw
// sequence or FASTA. FASTA header lines are dropped.
func readSequence(path string) (sequence string, err error) {
	dat, err := ioutil.ReadFile(path)
	if err != nil {
		return
	}
	var parts []string
	for _, line := range strings.Split(string(dat), "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 1 || strings.HasPrefix(line, ">") {
			continue
		}
		parts = append(parts, line)
	}
	sequence = strings.Join(parts, "")
	if len(sequence) < 1 {
		err = errors.New("No sequence found in " + path)
	}
	return
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	usr, err := user.Current()
	if err != nil {
		log.Fatal(err)
	}
	homeDir = usr.HomeDir

	app = cli.NewApp()
	app.Name = "triplex-cli"
	app.Usage = "triplex primer analysis client"
	app.Version = version

	app.Commands = []cli.Command{

		{
			Name:  "config",
			Usage: "Configure triplex-cli",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:        "server",
					Value:       "",
					Destination: &serverAddress,
					Usage:       "Analysis server address",
				},
			},
			Action: func(c *cli.Context) (err error) {
				if len(serverAddress) < 1 {
					msg := "Server address should not be empty. Example: "
					msg += "triplex-cli config --server https://triplex.example.org"
					err = errors.New(msg)
					return
				}
				_, err = url.ParseRequestURI(serverAddress)
				if err != nil {
					return
				}

				cmdStr := "mkdir -p " + homeDir + "/.triplex && echo -n '" + serverAddress
				cmdStr += "' > " + homeDir + "/.triplex/TRIPLEX_SERVER_ADDRESS"
				cmd := exec.Command("bash", "-c", cmdStr)
				err = cmd.Run()
				if err != nil {
					log.Println(cmdStr)
					log.Printf("error: %v\n", err)
					return
				}
				fmt.Println("triplex-cli is successfully configured. Happy hacking!")
				return err
			},
		},

		{
			Name:  "submit",
			Usage: "Submit a DNA sequence for analysis",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:        "sequence",
					Value:       "",
					Destination: &sequencePath,
					Usage:       "Path to the sequence file (raw or FASTA)",
				},
				cli.StringFlag{
					Name:        "sequence2",
					Value:       "",
					Destination: &sequence2Path,
					Usage:       "Path to the second sequence file",
				},
				cli.StringFlag{
					Name:        "email",
					Value:       "",
					Destination: &email,
					Usage:       "Address the result will be mailed to",
				},
			},
			Action: func(c *cli.Context) (err error) {
				err = checkForInitValues()
				if err != nil {
					os.Exit(1)
				}
				if len(sequencePath) < 1 {
					err = errors.New("--sequence should not be empty")
					return
				}
				if len(sequence2Path) < 1 {
					err = errors.New("--sequence2 should not be empty")
					return
				}
				if len(email) < 1 {
					err = errors.New("--email should not be empty")
					return
				}

				submission := Submission{Email: email}
				submission.DNASequence, err = readSequence(sequencePath)
				if err != nil {
					return
				}
				submission.DNASequence2, err = readSequence(sequence2Path)
				if err != nil {
					return
				}

				prompt := promptui.Prompt{
					Label:     "The submission will hold this terminal until the whole analysis pipeline has finished, which can take a long time. Are you sure you want to continue?",
					IsConfirm: true,
				}
				result, promptErr := prompt.Run()
				// Avoid shadowed err
				err = promptErr
				if err != nil {
					log.Println(err)
					return
				}
				if strings.ToLower(result) != "y" {
					return
				}

				fmt.Println("Submitting the sequence ...")
				header := req.Header{"Content-Type": "application/json"}
				jsonStr, _ := json.Marshal(submission)
				req.SetFlags(req.LrespBody)
				res, err := req.Post(serverAddress+"/api/v1/submit", header, string(jsonStr))
				if err != nil {
					return err
				}

				responseStr := fmt.Sprintf("%+v", res)
				submitResponse := SubmitResponse{}
				err = json.Unmarshal([]byte(responseStr), &submitResponse)
				if err != nil {
					// Failures come back as plain text
					err = errors.New(responseStr)
					return
				}

				cmdStr := "mkdir -p " + homeDir + "/.triplex && echo -n '"
				cmdStr += submitResponse.RequestID + "' > " + homeDir + "/.triplex/LAST_REQUEST_ID"
				cmd := exec.Command("bash", "-c", cmdStr)
				if cmdErr := cmd.Run(); cmdErr != nil {
					log.Printf("error: %v\n", cmdErr)
				}

				fmt.Println(submitResponse.State)
				fmt.Println("The primer list has been mailed to " + email)
				return
			},
		},

		{
			Name:  "status",
			Usage: "Check status of a request",
			Action: func(c *cli.Context) (err error) {
				requestID = c.Args().First()
				err = checkForInitValues()
				if err != nil {
					os.Exit(1)
				}
				if len(requestID) < 1 {
					dat, _ := ioutil.ReadFile(homeDir + "/.triplex/LAST_REQUEST_ID")
					requestID = string(dat)
					if len(requestID) < 1 {
						err = errors.New("request id should not be empty")
						return
					}
				}
				fmt.Println("Checking the status of " + requestID + " ...")
				req.SetFlags(req.LrespBody)
				result, err := req.Get(serverAddress+"/api/v1/status?id="+requestID, nil)
				if err != nil {
					return err
				}

				responseStr := fmt.Sprintf("%+v", result)
				statusResponse := StatusResponse{}
				err = json.Unmarshal([]byte(responseStr), &statusResponse)
				if err != nil {
					return
				}
				if len(statusResponse.FailureKind) > 0 {
					fmt.Println(statusResponse.State + " (" + statusResponse.FailureKind + ")")
					return
				}
				fmt.Println(statusResponse.State)

				return
			},
		},
		{
			Name:  "log",
			Usage: "Read the logs of a request",
			Action: func(c *cli.Context) (err error) {
				requestID = c.Args().First()
				err = checkForInitValues()
				if err != nil {
					os.Exit(1)
				}
				if len(requestID) < 1 {
					dat, _ := ioutil.ReadFile(homeDir + "/.triplex/LAST_REQUEST_ID")
					requestID = string(dat)
					if len(requestID) < 1 {
						err = errors.New("request id should not be empty")
						return
					}
				}
				fmt.Println("Fetching the logs of " + requestID + " ...")
				req.SetFlags(req.LrespBody)
				result, err := req.Get(serverAddress+"/logs/"+requestID+".log", nil)
				if err != nil {
					log.Println(err.Error())
					return err
				}
				logResult := fmt.Sprintf("%+v", result)
				if strings.Contains(logResult, "404 page not found") {
					err = errors.New("Request log is not found. The pipeline may terminated ungracefully.")
					return err
				}
				fmt.Println(logResult)

				return
			},
		},
		{
			Name:  "update",
			Usage: "Update the triplex-cli tool",
			Action: func(c *cli.Context) (err error) {
				var (
					cmdStr          = "/usr/bin/triplex-cli --version"
					downloadURL     string
					githubResponse  GithubReleaseResponse
					githubAssetName = "triplex-cli"
					url             = "https://api.github.com/repos/seqlab/triplex-go/releases/latest"
				)

				response, err := http.Get(url)
				if err != nil {
					log.Printf("error: %v\n", err)
					log.Println("Failed to get release info.")

					return
				}
				defer response.Body.Close()

				body, err := ioutil.ReadAll(response.Body)
				if err != nil {
					log.Printf("error: %v\n", err)

					return
				}

				if err := json.Unmarshal(body, &githubResponse); err != nil {
					log.Printf("error: %v\n", err)

					return err
				}

				for _, asset := range githubResponse.Assets {
					if asset.Name == githubAssetName {
						downloadURL = strings.TrimSuffix(string(asset.BrowserDownloadUrl), "\n")
						break
					}
				}

				log.Println(downloadURL)
				log.Println("Self-updating...")

				resp, err := http.Get(downloadURL)
				if err != nil {
					log.Printf("error: %v\n", err)

					return err
				}

				defer resp.Body.Close()

				err = update.Apply(resp.Body, update.Options{})
				if err != nil {
					log.Printf("error: %v\n", err)

					return err
				}

				log.Println(cmdStr)

				output, err := exec.Command("bash", "-c", cmdStr).Output()
				if err != nil {
					log.Println(output)
					log.Printf("error: %v\n", err)
				}
				log.Println("Updated to " + strings.TrimSuffix(string(output), "\n"))

				return
			},
		},
	}

	err = app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
